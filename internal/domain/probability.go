package domain

// Prediction es el resultado de estimar la probabilidad de "Up" para una
// fecha objetivo. Es un resultado etiquetado: un 50/50 genuino del modelo y
// un 50/50 por fallo de estimación son distinguibles vía Method/Reason.
type Prediction struct {
	TargetDate      string  // "YYYY-MM-DD"
	ProbabilityUp   float64 // 0~1
	ProbabilityDown float64 // 1 - ProbabilityUp
	Direction       Side    // lado implícito: Up si ProbabilityUp >= 0.5
	Confidence      float64 // |p - 0.5| × 2, en [0,1]
	Method          string  // "regression" | "regression+fusion" | "fixed" | MethodFallback
	Reason          string  // motivo del fallback; vacío para estimaciones genuinas
}

// MethodFallback marca una predicción sustituida por 50/50 porque la
// estimación falló. El simulador se salta estos eventos en vez de tratar
// el 0.5 como señal del modelo.
const MethodFallback = "fallback"

// IsFallback devuelve true si la predicción no proviene de un modelo entrenado.
func (p Prediction) IsFallback() bool {
	return p.Method == MethodFallback
}

// NewPrediction construye una predicción genuina a partir de la probabilidad
// de Up, derivando el complemento, la dirección y la confianza.
func NewPrediction(targetDate string, probUp float64, method string) Prediction {
	dir := SideUp
	if probUp < 0.5 {
		dir = SideDown
	}
	conf := probUp - 0.5
	if conf < 0 {
		conf = -conf
	}
	return Prediction{
		TargetDate:      targetDate,
		ProbabilityUp:   probUp,
		ProbabilityDown: 1.0 - probUp,
		Direction:       dir,
		Confidence:      conf * 2,
		Method:          method,
	}
}

// FallbackPrediction construye la predicción neutra etiquetada con el motivo
// por el que no se pudo entrenar un modelo para la fecha.
func FallbackPrediction(targetDate, reason string) Prediction {
	return Prediction{
		TargetDate:      targetDate,
		ProbabilityUp:   0.5,
		ProbabilityDown: 0.5,
		Direction:       SideUp,
		Confidence:      0,
		Method:          MethodFallback,
		Reason:          reason,
	}
}
