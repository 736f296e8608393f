package enums

import "fmt"

// Operation is the verb a role wants to perform on an entity kind.
type Operation string

const (
	OperationList   Operation = "list"
	OperationRead   Operation = "read"
	OperationSearch Operation = "search"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

var validOperations = []Operation{
	OperationList,
	OperationRead,
	OperationSearch,
	OperationCreate,
	OperationUpdate,
	OperationDelete,
}

// String implements fmt.Stringer.
func (o Operation) String() string {
	return string(o)
}

// IsValid reports whether the value is a known Operation.
func (o Operation) IsValid() bool {
	for _, candidate := range validOperations {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOperation converts raw input into an Operation.
func ParseOperation(value string) (Operation, error) {
	for _, candidate := range validOperations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid operation %q", value)
}
