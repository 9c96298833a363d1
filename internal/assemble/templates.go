package assemble

import (
	"fmt"
	"strings"

	"github.com/solhealth/consulta/internal/model"
)

// systemPrompt frames every generation call.
const systemPrompt = "Eres un asistente médico especializado en consultar información de expedientes médicos."

// fallbackAnswer replaces the generated answer when the generation
// capability fails. The failure is never surfaced to the caller.
const fallbackAnswer = "Lo siento, no pude procesar tu consulta en este momento. " +
	"Por favor, intenta reformular tu pregunta o consulta directamente con el personal médico."

const patientInfoTemplate = `Basándote ÚNICAMENTE en la información médica proporcionada, responde la siguiente consulta sobre un paciente específico.

INFORMACIÓN MÉDICA DISPONIBLE:
%s

CONSULTA: %s

INSTRUCCIONES CRÍTICAS:
- Responde SOLO con información que esté explícitamente en el contexto
- Si no hay información suficiente, indícalo claramente
- Usa terminología médica apropiada pero accesible
- NUNCA inventes información médica
- Incluye fechas y detalles relevantes cuando estén disponibles
- Sugiere consultar al médico para decisiones críticas

RESPUESTA:`

const conditionListTemplate = `Basándote en la información médica proporcionada, genera una lista de pacientes que cumplen con el criterio solicitado.

INFORMACIÓN MÉDICA DISPONIBLE:
%s

CONSULTA: %s

INSTRUCCIONES:
- Lista SOLO pacientes que aparezcan en la información proporcionada
- Incluye información relevante de cada paciente (diagnóstico, fecha, síntomas)
- Organiza la lista de manera clara y estructurada
- Indica el número total de pacientes encontrados
- Si no hay pacientes que cumplan el criterio, indícalo claramente

RESPUESTA:`

const generalTemplate = `Basándote en la información médica proporcionada, responde la consulta médica de manera precisa y responsable.

INFORMACIÓN MÉDICA DISPONIBLE:
%s

CONSULTA: %s
ENTIDADES DETECTADAS: %s

INSTRUCCIONES:
- Responde basándote ÚNICAMENTE en la información proporcionada
- Mantén un enfoque médico profesional pero accesible
- Si la información es insuficiente, sugiere consultar al médico
- NUNCA inventes datos médicos
- Proporciona respuestas estructuradas y claras

RESPUESTA:`

// buildPrompt selects the intent-specific template and fills it in.
func buildPrompt(analysis model.QueryAnalysis, context string) string {
	switch analysis.Intent {
	case model.IntentPatientInfo:
		return fmt.Sprintf(patientInfoTemplate, context, analysis.OriginalQuery)
	case model.IntentConditionList:
		return fmt.Sprintf(conditionListTemplate, context, analysis.OriginalQuery)
	default:
		return fmt.Sprintf(generalTemplate, context, analysis.OriginalQuery, formatEntities(analysis.Entities))
	}
}

func formatEntities(entities model.EntitySet) string {
	var parts []string
	for _, category := range []string{
		model.EntityPatients, model.EntityConditions, model.EntitySymptoms,
		model.EntityMedications, model.EntityDates,
	} {
		if vals := entities[category]; len(vals) > 0 {
			parts = append(parts, category+": "+strings.Join(vals, ", "))
		}
	}
	if len(parts) == 0 {
		return "ninguna"
	}
	return strings.Join(parts, "; ")
}
