package sqlconv

// Example 内置示例语句
type Example struct {
	Title string `json:"title"`
	SQL   string `json:"sql"`
}

var examples = []Example{
	{
		Title: "Update with condition",
		SQL:   "UPDATE users SET status = 'active' WHERE id = 123;",
	},
	{
		Title: "Delete old records",
		SQL:   "DELETE FROM orders WHERE created_at < '2023-01-01';",
	},
	{
		Title: "Update with table alias",
		SQL:   "UPDATE products p SET price = price * 1.1 WHERE p.category = 'electronics';",
	},
	{
		Title: "Multi-line statement",
		SQL: `UPDATE inventory.items
SET quantity = 0,
    updated_at = NOW()
WHERE expires_at < NOW()
  AND quantity > 0;`,
	},
}

// Examples 返回内置示例的副本
func Examples() []Example {
	out := make([]Example, len(examples))
	copy(out, examples)
	return out
}
