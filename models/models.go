package models

// All lists every persisted model in migration order.
func All() []any {
	return []any{
		&User{},
		&Business{},
		&Category{},
		&Product{},
		&ProductImage{},
		&Address{},
		&CartItem{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&Review{},
	}
}
