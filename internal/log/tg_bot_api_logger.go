package log

import (
	"fmt"
	"log/slog"
	"strings"
)

// TGBotAPIAdapter адаптирует slog.Logger под интерфейс логгера,
// который ожидает библиотека go-telegram-bot-api/v5.
type TGBotAPIAdapter struct {
	Logger *slog.Logger
}

// NewTGBotAPIAdapter создает адаптер с пометкой компонента.
func NewTGBotAPIAdapter(logger *slog.Logger) *TGBotAPIAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TGBotAPIAdapter{Logger: logger.With(slog.String("component", "tgbotapi"))}
}

// Println реализует метод интерфейса tgbotapi.BotLogger.
func (a *TGBotAPIAdapter) Println(v ...interface{}) {
	a.log(strings.TrimSpace(fmt.Sprintln(v...)))
}

// Printf реализует метод интерфейса tgbotapi.BotLogger.
func (a *TGBotAPIAdapter) Printf(format string, v ...interface{}) {
	a.log(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Библиотека пишет и тела запросов в debug-режиме, и сетевые ошибки;
// последние поднимаются до warn.
func (a *TGBotAPIAdapter) log(msg string) {
	if strings.Contains(msg, "Failed") || strings.Contains(msg, "error") {
		a.Logger.Warn(msg)
		return
	}
	a.Logger.Debug(msg)
}
