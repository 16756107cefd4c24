package trackvia

// App is an application visible to the authenticated user.
type App struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// View is a saved, permissioned projection over a table. Views are the
// addressing context for every record and file operation.
type View struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	ApplicationName string `json:"applicationName"`
	Default         bool   `json:"default"`
}

// User is an account in the application.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	TimeZone  string `json:"timezone"`
}

// Field describes one column of a view's structure.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Unique   bool   `json:"unique"`
}

// Record is one row of a view, keyed by field name. Values keep the
// types encoding/json assigns (string, float64, bool, nil, nested).
type Record map[string]any

// ID returns the record's identifier, or 0 when absent. The service
// reports it under the "id" key as a JSON number.
func (r Record) ID() int64 {
	if v, ok := r["id"].(float64); ok {
		return int64(v)
	}

	return 0
}

// RecordSet is the service's record collection envelope: the view's
// column structure, the rows, and the total match count (which can
// exceed len(Data) on paginated reads).
type RecordSet struct {
	Structure  []Field  `json:"structure"`
	Data       []Record `json:"data"`
	TotalCount int64    `json:"totalCount"`
}

// userSet is the envelope for user listings.
type userSet struct {
	Data       []User `json:"data"`
	TotalCount int64  `json:"totalCount"`
}
