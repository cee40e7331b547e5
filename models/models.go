package models

// All returns every storage record, in dependency order, for migrations.
func All() []interface{} {
	return []interface{}{
		&Product{},
		&Order{},
		&OrderItem{},
	}
}
