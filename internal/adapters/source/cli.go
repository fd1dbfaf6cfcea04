package source

import (
	"fmt"
	"io"
	"os"

	"telegram-update-normalizer/internal/ports"
)

// StdinPath — путь, означающий чтение из стандартного ввода.
const StdinPath = "-"

// CliSource реализует интерфейс DataSource для чтения дампа обновлений из файла,
// указанного в командной строке, или из стандартного ввода.
type CliSource struct {
	filePath string
	stdin    io.Reader
}

// CliOption — функциональная опция для CliSource.
type CliOption func(*CliSource)

// WithStdin подменяет стандартный ввод, используемый для пути "-".
func WithStdin(r io.Reader) CliOption {
	return func(s *CliSource) {
		s.stdin = r
	}
}

// NewCliSource создает новый экземпляр CliSource.
func NewCliSource(filePath string, opts ...CliOption) ports.DataSource {
	s := &CliSource{filePath: filePath, stdin: os.Stdin}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch читает файл по указанному пути и возвращает его содержимое.
func (s *CliSource) Fetch() ([]byte, error) {
	if s.filePath == "" {
		return nil, fmt.Errorf("не указан путь к файлу")
	}

	if s.filePath == StdinPath {
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", s.filePath, err)
	}

	return data, nil
}
