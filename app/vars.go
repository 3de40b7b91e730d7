package app

import (
	"encoding/gob"
	"log"
	"os"
)

func init() {
	gob.Register(&Serialization{})
}

var (
	allOut bool = true

	// processing options
	featureSet       string
	debugLevel       int
	absoluteCounts   bool
	relativeCounts   bool
	collectCorrect   bool
	collectIncorrect bool
	lowercaseWords   bool
	minCount         int
	outputMode       int

	// file names
	modelFile     string
	saveModelFile string
)

// Serialization bundles everything rerank needs to start scoring:
// the feature-set name, the pruned feature definitions as written by
// extract, and the fitted weight vector. Weights may be empty when the
// bundle was written before fitting.
type Serialization struct {
	FeatureSet  string
	Definitions []byte
	Weights     []float64
}

func WriteModel(file string, data *Serialization) {
	fObj, err := os.Create(file)
	if err != nil {
		log.Fatalln("Failed creating model file", file, err)
		return
	}
	defer fObj.Close()
	writer := gob.NewEncoder(fObj)
	if err := writer.Encode(data); err != nil {
		log.Fatalln("Failed writing model to", file, err)
	}
}

func ReadModel(file string) *Serialization {
	data := &Serialization{}
	fObj, err := os.Open(file)
	if err != nil {
		log.Fatalln("Failed reading model from", file, err)
		return nil
	}
	defer fObj.Close()
	reader := gob.NewDecoder(fObj)
	if err := reader.Decode(data); err != nil {
		log.Fatalln("Failed decoding model from", file, err)
	}
	return data
}

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}
