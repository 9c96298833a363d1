package model

// Intent classifies what kind of question was asked.
// Exactly one intent is assigned per query.
type Intent string

const (
	IntentPatientInfo    Intent = "patient_info"    // Questions about one specific patient
	IntentConditionList  Intent = "condition_list"  // Lists of patients with a condition
	IntentSymptomSearch  Intent = "symptom_search"  // Searches by reported symptom
	IntentMedicationInfo Intent = "medication_info" // Medication and treatment questions
	IntentTemporalQuery  Intent = "temporal_query"  // Questions with a time component
	IntentGeneralQuery   Intent = "general_query"   // Fallback when nothing matches
)

// Entity categories used in EntitySet.
const (
	EntityPatients    = "patients"
	EntityConditions  = "conditions"
	EntitySymptoms    = "symptoms"
	EntityMedications = "medications"
	EntityDates       = "dates"
)

// EntitySet maps an entity category to an ordered, de-duplicated list of
// strings extracted from the query. Every category is always present,
// empty categories hold empty lists.
type EntitySet map[string][]string

// NewEntitySet returns an EntitySet with all categories initialized.
func NewEntitySet() EntitySet {
	return EntitySet{
		EntityPatients:    {},
		EntityConditions:  {},
		EntitySymptoms:    {},
		EntityMedications: {},
		EntityDates:       {},
	}
}

// Add appends value to the category unless it is already present.
// Insertion order is preserved.
func (e EntitySet) Add(category, value string) {
	for _, v := range e[category] {
		if v == value {
			return
		}
	}
	e[category] = append(e[category], value)
}

// First returns the first entity in the category, or "" if empty.
func (e EntitySet) First(category string) string {
	if vals := e[category]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}

// Count returns the total number of extracted entities across categories.
func (e EntitySet) Count() int {
	n := 0
	for _, vals := range e {
		n += len(vals)
	}
	return n
}
