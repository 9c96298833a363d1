package pipeline

import "github.com/solhealth/consulta/internal/model"

// ExampleQueries returns, per intent, queries the system handles well.
// Used by the CLI and by API documentation.
func ExampleQueries() map[model.Intent][]string {
	return map[model.Intent][]string{
		model.IntentPatientInfo: {
			"¿Qué enfermedad tiene Pepito Gómez?",
			"¿Cuál es el diagnóstico de María García?",
			"¿Qué le pasa a Juan Pérez?",
		},
		model.IntentConditionList: {
			"Listame los pacientes con diabetes",
			"¿Quiénes tienen hipertensión?",
			"¿Cuántos pacientes tienen migraña?",
		},
		model.IntentSymptomSearch: {
			"¿Quién tiene dolor de cabeza?",
			"Pacientes con fiebre",
		},
		model.IntentMedicationInfo: {
			"¿Qué medicamentos toma Ana?",
			"Tratamiento para la diabetes",
		},
		model.IntentTemporalQuery: {
			"¿Qué pacientes vinieron ayer?",
			"¿Cuándo fue la última visita de Pedro?",
		},
	}
}
