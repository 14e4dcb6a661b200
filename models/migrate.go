package models

// All lists every table for AutoMigrate, shared by main and the test setup.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Category{},
		&Product{},
		&Gift{},
		&Cart{},
		&CartItem{},
		&Order{},
		&OrderProduct{},
		&CardType{},
		&CardOrder{},
		&Expense{},
		&Sale{},
		&Subscriber{},
		&NewsletterLog{},
		&Employer{},
		&WebhookEvent{},
	}
}
