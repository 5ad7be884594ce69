package domain

// QualitativeSignal es el juicio cualitativo externo para una fecha:
// un bias y una etiqueta de confianza, generados por cualquier proceso
// (humano o LLM). El core solo lo consume.
type QualitativeSignal struct {
	Bias       string // "bullish" | "bearish" | "neutral"
	Confidence string // "high" | "medium" | "low"
}
