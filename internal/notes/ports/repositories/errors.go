package repositories

import "errors"

// Ошибки уровня хранилища, общие для всех реализаций.
var (
	ErrNoteNotFoundOrNotOwned = errors.New("note not found or not owned by user")
	ErrTagNotFoundOrNotOwned  = errors.New("tag not found or not owned by user")
	ErrDuplicateAssociation   = errors.New("tag is already attached to note")
	ErrAssociationNotFound    = errors.New("tag is not attached to note")
)
