package store

// SeedRecords returns the initial product catalog. The SQL stores receive the
// same rows from the seed migration.
func SeedRecords() []Record {
	return []Record{
		{FieldID: "101", FieldName: "Laptop", FieldPrice: 1200.50, FieldStock: 15},
		{FieldID: "102", FieldName: "Mouse", FieldPrice: 25.00, FieldStock: 120},
		{FieldID: "103", FieldName: "Keyboard", FieldPrice: 75.99, FieldStock: 75},
		{FieldID: "201", FieldName: "Monitor", FieldPrice: 300.00, FieldStock: 30},
		{FieldID: "205", FieldName: "Webcam", FieldPrice: 50.25, FieldStock: 50},
	}
}
