package tools

import "errors"

var (
	ErrAccessDenied   = errors.New("доступ к файлу запрещён")
	ErrNotADirectory  = errors.New("указанный путь не является директорией")
	ErrEmptyCommand   = errors.New("команда не должна быть пустой")
	ErrUnknownCommand = errors.New("неизвестная команда")
	ErrFileTooLarge   = errors.New("файл слишком большой")
	ErrBinaryFile     = errors.New("файл не является текстовым")
)
