package remote

import (
	"errors"
	"os"
	"path/filepath"
)

// TokenFile — файловое хранилище auth-токена клиента.
type TokenFile struct {
	Path string
}

// Save сохраняет auth-токен в файл.
func (t TokenFile) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(t.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(t.Path, []byte(token), 0o600)
}

// Load читает auth-токен из файла.
func (t TokenFile) Load() (string, error) {
	b, err := os.ReadFile(t.Path)
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	for len(b) > 0 {
		c := b[len(b)-1]
		if c == '\n' || c == '\r' || c == ' ' || c == '\t' {
			b = b[:len(b)-1]
			continue
		}
		break
	}
	if len(b) == 0 {
		return "", errors.New("empty token file")
	}
	return string(b), nil
}
