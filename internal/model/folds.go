package model

// folds.go — validación cruzada de series temporales con ventana expansiva:
// cada fold entrena solo con el pasado y valida sobre el tramo siguiente,
// evitando fugas temporales.

// Fold es un split train/test sobre índices de fila ordenados en el tiempo.
// El tramo de entrenamiento es siempre [0, TrainEnd).
type Fold struct {
	TrainEnd  int
	TestStart int
	TestEnd   int
}

// FoldCount devuelve cuántos folds usar según el tamaño de muestra:
// entre 2 y 5, un fold más por cada 50 filas de entrenamiento.
func FoldCount(n int) int {
	k := n / 50
	if k < 2 {
		return 2
	}
	if k > 5 {
		return 5
	}
	return k
}

// ExpandingFolds divide n filas en k folds de ventana expansiva. El tamaño
// de test es n/(k+1); el primer fold entrena al menos con ese mismo tramo.
// Devuelve nil si no hay filas suficientes para k folds no vacíos.
func ExpandingFolds(n, k int) []Fold {
	if k < 1 {
		return nil
	}
	testSize := n / (k + 1)
	if testSize < 1 {
		return nil
	}

	folds := make([]Fold, 0, k)
	for i := 0; i < k; i++ {
		testStart := n - (k-i)*testSize
		folds = append(folds, Fold{
			TrainEnd:  testStart,
			TestStart: testStart,
			TestEnd:   testStart + testSize,
		})
	}
	return folds
}
