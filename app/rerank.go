package app

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/mjpost/extract-spfeatures/nlp/format/nbest"
	"github.com/mjpost/extract-spfeatures/nlp/rerank"
	"github.com/mjpost/extract-spfeatures/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func RerankConfigOut(defsFile, weightsFile string) {
	log.Println("Configuration")
	log.Printf("Feature set (-f):\t\t%s", featureSetOrDefault())
	log.Printf("Absolute counts:\t\t%v", absoluteCounts)
	log.Printf("Lowercase words (-l):\t%v", lowercaseWords)
	log.Printf("Output mode (-m):\t\t%d", outputMode)
	if modelFile != "" {
		log.Printf("Model:\t\t\t%s", modelFile)
	} else {
		log.Printf("Feature definitions:\t%s", defsFile)
		log.Printf("Feature weights:\t\t%s", weightsFile)
	}
	log.Println()
}

// rerankSetup loads the feature registry and weight vector, either
// from a gob model bundle or from the definition and weight files
// given as positional arguments.
func rerankSetup(args []string) (*rerank.Registry, []float64) {
	if modelFile != "" {
		serialization := ReadModel(modelFile)
		featureSet = serialization.FeatureSet
		registry, err := rerank.NewRegistryFor(serialization.FeatureSet)
		if err != nil {
			log.Fatalln(err)
		}
		maxid, err := registry.LoadDefinitions(bytes.NewReader(serialization.Definitions))
		if err != nil {
			log.Fatalln(err)
		}
		weights := serialization.Weights
		if len(args) == 1 {
			weights = readWeightsFile(args[0], maxid)
		}
		if len(weights) == 0 {
			log.Fatalln("Model", modelFile, "carries no weights and no weights file was given")
		}
		if int(maxid) >= len(weights) {
			log.Fatalln("Model", modelFile, "weights cover", len(weights), "ids but definitions reach id", maxid)
		}
		return registry, weights
	}

	registry, err := rerank.NewRegistryFor(featureSet)
	if err != nil {
		log.Fatalln(err)
	}
	defsIn, err := util.OpenForRead(args[0])
	if err != nil {
		log.Fatalln("Can't open feature definition file:", err)
	}
	maxid, err := registry.LoadDefinitions(defsIn)
	if err != nil {
		log.Fatalln(err)
	}
	defsIn.Close()
	return registry, readWeightsFile(args[1], maxid)
}

func readWeightsFile(filename string, maxid rerank.FeatureId) []float64 {
	in, err := util.OpenForRead(filename)
	if err != nil {
		log.Fatalln("Can't open feature weights file:", err)
	}
	defer in.Close()
	weights, err := rerank.ReadWeights(in, maxid)
	if err != nil {
		log.Fatalln(err)
	}
	return weights
}

func Rerank(cmd *commander.Command, args []string) {
	// -a asks for the slower relative-count scoring; the inference
	// default is absolute counts.
	absoluteCounts = !relativeCounts

	var defsFile, weightsFile string
	switch {
	case modelFile == "" && len(args) == 2:
		defsFile, weightsFile = args[0], args[1]
		if !VerifyExists(defsFile) || !VerifyExists(weightsFile) {
			os.Exit(1)
		}
	case modelFile != "" && len(args) <= 1:
		if !VerifyExists(modelFile) {
			os.Exit(1)
		}
	default:
		log.Println("Error: need a feature definition file and a weights file, or -model")
		cmd.Usage()
		os.Exit(1)
	}
	if debugLevel > 0 {
		RerankConfigOut(defsFile, weightsFile)
	}

	registry, weights := rerankSetup(args)
	scorer := rerank.NewScorer(registry, weights, absoluteCounts)

	if saveModelFile != "" {
		saveRerankModel(registry, weights)
	}

	reader := nbest.NewReader(os.Stdin, lowercaseWords)
	out := os.Stdout
	for {
		sentence, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalln(err)
		}
		switch outputMode {
		case 0:
			err = scorer.WriteBestTree(out, sentence)
		case 1:
			err = scorer.WriteRankedTrees(out, sentence)
		case 2:
			err = scorer.WriteFeaturesDebug(out, sentence)
		default:
			log.Fatalln("Error: unknown mode =", outputMode)
		}
		if err != nil {
			log.Fatalln(err)
		}
	}
}

func saveRerankModel(registry *rerank.Registry, weights []float64) {
	var defs bytes.Buffer
	if err := registry.WriteDefinitions(&defs); err != nil {
		log.Fatalln(err)
	}
	WriteModel(saveModelFile, &Serialization{
		FeatureSet:  featureSet,
		Definitions: defs.Bytes(),
		Weights:     weights,
	})
	if allOut {
		log.Println("Wrote model to", saveModelFile)
	}
}

func RerankCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Rerank,
		UsageLine: "rerank <options> feat-defs feat-weights < nbest-parses > best-parses",
		Short:     "reranks n-best parses with a fitted feature model",
		Long: `
reranks n-best parses with a fitted feature model

	$ ./extract-spfeatures rerank [options] feat-defs.bz2 feat-weights.bz2 < nbest-parses > best-parses

N-best parses are read from standard input. The output depends on the
mode: 0 prints the best tree per sentence, 1 prints all parses ranked
by score, 2 prints per-parse feature values. Definition and weight
files ending in .gz or .bz2 are decompressed.

`,
		Flag: *flag.NewFlagSet("rerank", flag.ExitOnError),
	}
	cmd.Flag.BoolVar(&relativeCounts, "a", false, "Score with relative feature counts (slower)")
	cmd.Flag.IntVar(&debugLevel, "d", 0, "Debug output level")
	cmd.Flag.StringVar(&featureSet, "f", "", "Feature set name or .yaml feature setup file (must agree with extract)")
	cmd.Flag.BoolVar(&lowercaseWords, "l", false, "Map all words to lower case as trees are read")
	cmd.Flag.IntVar(&outputMode, "m", 0, "Output mode: 0 best tree, 1 ranked parses, 2 feature values")
	cmd.Flag.StringVar(&modelFile, "model", "", "Load feature set, definitions and weights from a gob model file")
	cmd.Flag.StringVar(&saveModelFile, "savemodel", "", "Write the loaded model as a gob model file")
	return cmd
}
