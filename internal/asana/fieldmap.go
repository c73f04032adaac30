package asana

import "fmt"

// FieldMap binds each logical event field to the name of the Asana
// custom field that carries it. The map is fixed per deployment and
// validated once at startup instead of being looked up ad hoc per task.
type FieldMap struct {
	Status       string
	Ministry     string
	Trigger      string
	Registration string
	Content      string
	Graphics     string
	Locations    string
}

func DefaultFieldMap() FieldMap {
	return FieldMap{
		Status:       "Event Status",
		Ministry:     "Ministry",
		Trigger:      "Website Trigger",
		Registration: "Registration",
		Content:      "Content",
		Graphics:     "Graphics",
		Locations:    "Locations",
	}
}

func (m FieldMap) Validate() error {
	named := map[string]string{
		"status":       m.Status,
		"ministry":     m.Ministry,
		"trigger":      m.Trigger,
		"registration": m.Registration,
		"content":      m.Content,
		"graphics":     m.Graphics,
		"locations":    m.Locations,
	}

	seen := make(map[string]string, len(named))
	for logical, fieldName := range named {
		if fieldName == "" {
			return fmt.Errorf("asana field map: %s is not bound to a custom field", logical)
		}
		if prev, ok := seen[fieldName]; ok {
			return fmt.Errorf("asana field map: %q bound to both %s and %s", fieldName, prev, logical)
		}
		seen[fieldName] = logical
	}
	return nil
}
