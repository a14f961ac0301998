package query

import "fmt"

// Condition represents a WHERE clause condition.
// Implementations generate SQL fragments using Spanner's named
// parameter format (@paramName).
type Condition interface {
	// SQL returns the SQL fragment and parameter map for this condition.
	// paramIndex is used to generate unique parameter names (@p0, @p1, etc.)
	SQL(paramIndex int) (string, map[string]interface{})
}

// cmpCondition implements a binary comparison (field <op> value).
type cmpCondition struct {
	field string
	op    string
	value interface{}
}

func (c *cmpCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

// Eq creates a WHERE condition for equality comparison.
// Example: Eq("user_id", id) generates "user_id = @p0"
func Eq(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "=", value: value}
}

// Lt creates a strict less-than condition.
// Example: Lt("added_at", cutoff) generates "added_at < @p0"
func Lt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: "<", value: value}
}

// Gt creates a strict greater-than condition.
// Example: Gt("stock", 0) generates "stock > @p0"
func Gt(field string, value interface{}) Condition {
	return &cmpCondition{field: field, op: ">", value: value}
}

// EqFold creates a case-insensitive string equality condition.
// Example: EqFold("email", "A@b.c") generates "LOWER(email) = LOWER(@p0)"
func EqFold(field string, value string) Condition {
	return &eqFoldCondition{field: field, value: value}
}

type eqFoldCondition struct {
	field string
	value string
}

func (c *eqFoldCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("LOWER(%s) = LOWER(@%s)", c.field, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

// In creates a membership condition over an array parameter.
// Example: In("product_id", ids) generates "product_id IN UNNEST(@p0)"
func In(field string, values interface{}) Condition {
	return &inCondition{field: field, values: values}
}

type inCondition struct {
	field  string
	values interface{}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName), map[string]interface{}{
		paramName: c.values,
	}
}

// IsNull creates a WHERE condition for NULL checks.
// Example: IsNull("price_numerator") generates "price_numerator IS NULL"
func IsNull(field string) Condition {
	return &nullCondition{field: field, negate: false}
}

// IsNotNull creates a WHERE condition for NOT NULL checks.
func IsNotNull(field string) Condition {
	return &nullCondition{field: field, negate: true}
}

type nullCondition struct {
	field  string
	negate bool
}

func (c *nullCondition) SQL(int) (string, map[string]interface{}) {
	if c.negate {
		return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
	}
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}
