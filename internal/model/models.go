package model

// All returns every persisted model in dependency order, for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserFactor{},
		&Organization{},
		&Membership{},
		&RoleAlias{},
		&UserProfile{},
		&SocialLink{},
		&ProfileImage{},
		&CustomField{},
		&Tab{},
		&Entry{},
		&EntryImage{},
		&Invite{},
		&AuditLog{},
	}
}
