package models

import "github.com/google/uuid"

// All lists every persisted model, in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Chat{},
		&ChatMember{},
		&Message{},
		&MessageRead{},
		&MessageReaction{},
		&MessageEdit{},
		&FileUpload{},
	}
}

func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
