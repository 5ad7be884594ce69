package model

// fusion.go — fusión de la probabilidad del estimador con una señal
// cualitativa externa (bias + confianza) por interpolación lineal ponderada.
//
// El peso cualitativo está acotado a 0.35: el juicio cualitativo puede
// desplazar la señal cuantitativa pero nunca anular un modelo confiado.

// Biases cualitativos reconocidos.
const (
	BiasBullish = "bullish"
	BiasBearish = "bearish"
	BiasNeutral = "neutral"
)

// Niveles de confianza reconocidos.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// defaultBlendWeight se aplica cuando la confianza no se reconoce.
const defaultBlendWeight = 0.20

var biasAnchors = map[string]float64{
	BiasBullish: 0.65,
	BiasBearish: 0.35,
	BiasNeutral: 0.50,
}

var confidenceWeights = map[string]float64{
	ConfidenceHigh:   0.35,
	ConfidenceMedium: 0.25,
	ConfidenceLow:    0.15,
}

// Fusion es la probabilidad final con su descomposición completa, para que
// cualquier reporte pueda auditar cuánto aportó cada componente.
type Fusion struct {
	FinalProbabilityUp   float64
	FinalProbabilityDown float64

	EstimatorProbUp float64
	EstimatorWeight float64
	AnchorProb      float64
	AnchorWeight    float64
	Bias            string
	Confidence      string
}

// Fuse interpola la probabilidad del estimador con el ancla del bias:
// final = (1-w)·estimador + w·ancla.
func Fuse(estimatorProbUp float64, bias, confidence string) Fusion {
	anchor, ok := biasAnchors[bias]
	if !ok {
		anchor = 0.5
	}
	weight, ok := confidenceWeights[confidence]
	if !ok {
		weight = defaultBlendWeight
	}

	final := (1.0-weight)*estimatorProbUp + weight*anchor
	return Fusion{
		FinalProbabilityUp:   final,
		FinalProbabilityDown: 1.0 - final,
		EstimatorProbUp:      estimatorProbUp,
		EstimatorWeight:      1.0 - weight,
		AnchorProb:           anchor,
		AnchorWeight:         weight,
		Bias:                 bias,
		Confidence:           confidence,
	}
}
