package services

import (
	"telegram-update-normalizer/internal/domain"
)

// candidate описывает одно поле записи, которое может определить вид сообщения.
type candidate struct {
	field string
	ok    bool
	build func() (domain.MessageContent, error)
}

// static оборачивает готовое содержимое в построитель.
func static(content domain.MessageContent) func() (domain.MessageContent, error) {
	return func() (domain.MessageContent, error) {
		return content, nil
	}
}

// content определяет вид сообщения. Сначала просматривается группа содержимого,
// затем группа служебных событий, каждая в фиксированном порядке приоритета;
// побеждает первое заполненное поле. Остальные заполненные поля возвращаются
// в ignored. Если ничего не заполнено, сообщение получает вид plain.
func (c *converter) content(raw *domain.RawMessage, depth int) (domain.MessageContent, []string, error) {
	var winner *candidate
	var ignored []string

	groups := [][]candidate{contentCandidates(raw), c.serviceCandidates(raw, depth)}
	for _, group := range groups {
		for i := range group {
			if !group[i].ok {
				continue
			}
			if winner == nil {
				winner = &group[i]
				continue
			}
			ignored = append(ignored, group[i].field)
		}
	}

	if winner == nil {
		return domain.PlainContent{}, nil, nil
	}
	content, err := winner.build()
	if err != nil {
		return nil, nil, err
	}
	return content, ignored, nil
}

// contentCandidates перечисляет группу содержимого в порядке приоритета:
// text, audio, document, animation, game, photo, sticker, video, voice,
// video_note, contact, location, venue, poll, dice.
func contentCandidates(raw *domain.RawMessage) []candidate {
	text := func() (domain.MessageContent, error) {
		return domain.TextContent{Text: *raw.Text, Entities: raw.Entities}, nil
	}
	candidates := []candidate{
		{field: "text", ok: raw.Text != nil, build: text},
		{field: "audio", ok: raw.Audio != nil},
		{field: "document", ok: raw.Document != nil},
		{field: "animation", ok: raw.Animation != nil},
		{field: "game", ok: raw.Game != nil},
		{field: "photo", ok: len(raw.Photo) > 0},
		{field: "sticker", ok: raw.Sticker != nil},
		{field: "video", ok: raw.Video != nil},
		{field: "voice", ok: raw.Voice != nil},
		{field: "video_note", ok: raw.VideoNote != nil},
		{field: "contact", ok: raw.Contact != nil},
		{field: "location", ok: raw.Location != nil},
		{field: "venue", ok: raw.Venue != nil},
		{field: "poll", ok: raw.Poll != nil},
		{field: "dice", ok: raw.Dice != nil},
	}
	for i := range candidates {
		if candidates[i].build == nil && candidates[i].ok {
			candidates[i].build = static(mediaContent(raw, candidates[i].field))
		}
	}
	return candidates
}

// mediaContent строит содержимое для заведомо заполненного поля.
func mediaContent(raw *domain.RawMessage, field string) domain.MessageContent {
	switch field {
	case "audio":
		return domain.AudioContent{Audio: *raw.Audio, Caption: raw.Caption, CaptionEntities: raw.CaptionEntities}
	case "document":
		return domain.DocumentContent{Document: *raw.Document, Caption: raw.Caption, CaptionEntities: raw.CaptionEntities}
	case "animation":
		return domain.AnimationContent{Animation: *raw.Animation, Caption: raw.Caption, CaptionEntities: raw.CaptionEntities}
	case "game":
		return domain.GameContent{Game: *raw.Game}
	case "photo":
		return domain.PhotoContent{Sizes: raw.Photo, Caption: raw.Caption, CaptionEntities: raw.CaptionEntities}
	case "sticker":
		return domain.StickerContent{Sticker: *raw.Sticker}
	case "video":
		return domain.VideoContent{Video: *raw.Video, Caption: raw.Caption, CaptionEntities: raw.CaptionEntities}
	case "voice":
		return domain.VoiceContent{Voice: *raw.Voice, Caption: raw.Caption, CaptionEntities: raw.CaptionEntities}
	case "video_note":
		return domain.VideoNoteContent{VideoNote: *raw.VideoNote}
	case "contact":
		return domain.ContactContent{Contact: *raw.Contact}
	case "location":
		return domain.LocationContent{Location: *raw.Location}
	case "venue":
		return domain.VenueContent{Venue: *raw.Venue}
	case "poll":
		return domain.PollContent{Poll: *raw.Poll}
	case "dice":
		return domain.DiceContent{Dice: *raw.Dice}
	}
	return domain.PlainContent{}
}

// serviceCandidates перечисляет группу служебных событий в порядке приоритета: состав
// участников, название и фото, удаление фото и создание чата, миграция,
// закрепленное сообщение, платежи, оповещение о приближении, голосовые чаты.
func (c *converter) serviceCandidates(raw *domain.RawMessage, depth int) []candidate {
	pinned := func() (domain.MessageContent, error) {
		m, err := c.schedule(raw.PinnedMessage, depth+1)
		if err != nil {
			return nil, err
		}
		return domain.PinnedMessageContent{Message: m}, nil
	}

	var candidates []candidate
	add := func(field string, ok bool, build func() domain.MessageContent) {
		cand := candidate{field: field, ok: ok}
		if ok {
			cand.build = func() (domain.MessageContent, error) { return build(), nil }
		}
		candidates = append(candidates, cand)
	}

	add("new_chat_members", len(raw.NewChatMembers) > 0, func() domain.MessageContent {
		return domain.NewChatMembersContent{Members: raw.NewChatMembers}
	})
	add("left_chat_member", raw.LeftChatMember != nil, func() domain.MessageContent {
		return domain.LeftChatMemberContent{Member: *raw.LeftChatMember}
	})
	add("new_chat_title", raw.NewChatTitle != nil, func() domain.MessageContent {
		return domain.NewChatTitleContent{Title: *raw.NewChatTitle}
	})
	add("new_chat_photo", len(raw.NewChatPhoto) > 0, func() domain.MessageContent {
		return domain.NewChatPhotoContent{Sizes: raw.NewChatPhoto}
	})
	add("delete_chat_photo", raw.DeleteChatPhoto, func() domain.MessageContent {
		return domain.DeleteChatPhotoContent{}
	})
	add("group_chat_created", raw.GroupChatCreated, func() domain.MessageContent {
		return domain.GroupChatCreatedContent{}
	})
	add("supergroup_chat_created", raw.SupergroupChatCreated, func() domain.MessageContent {
		return domain.SupergroupChatCreatedContent{}
	})
	add("channel_chat_created", raw.ChannelChatCreated, func() domain.MessageContent {
		return domain.ChannelChatCreatedContent{}
	})
	add("message_auto_delete_timer_changed", raw.MessageAutoDeleteTimerChanged != nil, func() domain.MessageContent {
		return domain.AutoDeleteTimerChangedContent{
			MessageAutoDeleteTime: raw.MessageAutoDeleteTimerChanged.MessageAutoDeleteTime,
		}
	})
	add("migrate_to_chat_id", raw.MigrateToChatID != nil, func() domain.MessageContent {
		return domain.MigrateToChatContent{ChatID: *raw.MigrateToChatID}
	})
	add("migrate_from_chat_id", raw.MigrateFromChatID != nil, func() domain.MessageContent {
		return domain.MigrateFromChatContent{ChatID: *raw.MigrateFromChatID}
	})
	candidates = append(candidates, candidate{field: "pinned_message", ok: raw.PinnedMessage != nil, build: pinned})
	add("invoice", raw.Invoice != nil, func() domain.MessageContent {
		return domain.InvoiceContent{Invoice: *raw.Invoice}
	})
	add("successful_payment", raw.SuccessfulPayment != nil, func() domain.MessageContent {
		return domain.SuccessfulPaymentContent{Payment: *raw.SuccessfulPayment}
	})
	add("connected_website", raw.ConnectedWebsite != nil, func() domain.MessageContent {
		return domain.ConnectedWebsiteContent{Domain: *raw.ConnectedWebsite}
	})
	add("passport_data", raw.HasPassportData(), func() domain.MessageContent {
		return domain.PassportDataContent{Data: raw.PassportData}
	})
	add("proximity_alert_triggered", raw.ProximityAlertTriggered != nil, func() domain.MessageContent {
		return domain.ProximityAlertContent{Alert: *raw.ProximityAlertTriggered}
	})
	add("voice_chat_scheduled", raw.VoiceChatScheduled != nil, func() domain.MessageContent {
		return domain.VoiceChatScheduledContent{StartDate: raw.VoiceChatScheduled.StartDate.Time}
	})
	add("voice_chat_started", raw.VoiceChatStarted != nil, func() domain.MessageContent {
		return domain.VoiceChatStartedContent{}
	})
	add("voice_chat_ended", raw.VoiceChatEnded != nil, func() domain.MessageContent {
		return domain.VoiceChatEndedContent{Duration: raw.VoiceChatEnded.Duration}
	})
	add("voice_chat_participants_invited", raw.VoiceChatParticipantsInvited != nil, func() domain.MessageContent {
		return domain.VoiceChatParticipantsInvitedContent{Users: raw.VoiceChatParticipantsInvited.Users}
	})
	return candidates
}
