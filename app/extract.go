package app

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/mjpost/extract-spfeatures/eval"
	"github.com/mjpost/extract-spfeatures/nlp/format/nbest"
	"github.com/mjpost/extract-spfeatures/nlp/rerank"
	"github.com/mjpost/extract-spfeatures/nlp/types"
	"github.com/mjpost/extract-spfeatures/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
)

func ExtractConfigOut() {
	log.Println("Configuration")
	log.Printf("Feature set (-f):\t\t%s", featureSetOrDefault())
	log.Printf("Absolute counts (-a):\t%v", absoluteCounts)
	log.Printf("Collect correct (-c):\t%v", collectCorrect)
	log.Printf("Collect incorrect (-i):\t%v", collectIncorrect)
	log.Printf("Min count (-s):\t\t%d", minCount)
	log.Printf("Lowercase words (-l):\t%v", lowercaseWords)
	log.Printf("Debug level (-d):\t\t%d", debugLevel)
	if modelFile != "" {
		log.Printf("Model output:\t\t%s", modelFile)
	}
	log.Println()
}

func featureSetOrDefault() string {
	if featureSet == "" {
		return "nfeatures"
	}
	return featureSet
}

func ExtractFeatures(cmd *commander.Command, args []string) {
	if !collectCorrect && !collectIncorrect {
		log.Println("Error: must set at least one of -c or -i")
		cmd.Usage()
		os.Exit(1)
	}
	if len(args) < 3 || len(args)%3 != 0 {
		log.Println("Error: data files must come in (nbest, gold, out) triples")
		cmd.Usage()
		os.Exit(1)
	}
	for i := 0; i+1 < len(args); i += 3 {
		if !VerifyExists(args[i]) || !VerifyExists(args[i+1]) {
			os.Exit(1)
		}
	}
	if allOut {
		ExtractConfigOut()
	}

	registry, err := rerank.NewRegistryFor(featureSet)
	if err != nil {
		log.Fatalln(err)
	}

	if allOut {
		log.Println("Counting features in", args[0])
	}
	var total eval.Total
	count, err := nbest.MapSentences(args[0], args[1], lowercaseWords, func(s *types.Sentence) error {
		registry.ExtractFrom(s, collectCorrect, collectIncorrect)
		if s.Gold != nil && s.NParses() > 0 {
			gold := eval.TreeEdges(s.Gold)
			total.Add(eval.Bracket(eval.TreeEdges(s.Parses[0].Tree), gold))
		}
		return nil
	})
	if err != nil {
		log.Fatalln(err)
	}
	if allOut {
		log.Println("Counted features in", count, "sentences")
		log.Printf("Parser baseline (P, R, F1, Exact): %.4f %.4f %.4f %.4f",
			total.Precision(), total.Recall(), total.F1(), total.ExactMatch())
	}

	var defs io.Writer = os.Stdout
	var defsCopy *bytes.Buffer
	if modelFile != "" {
		defsCopy = new(bytes.Buffer)
		defs = io.MultiWriter(os.Stdout, defsCopy)
	}
	maxid, err := registry.PruneAndRenumber(minCount, defs)
	if err != nil {
		log.Fatalln(err)
	}
	log.Printf("# maxid = %d, usage %s", maxid, util.MemoryUsage())

	if modelFile != "" {
		WriteModel(modelFile, &Serialization{
			FeatureSet:  featureSet,
			Definitions: defsCopy.Bytes(),
		})
		if allOut {
			log.Println("Wrote model to", modelFile)
		}
	}

	for i := 0; i+2 < len(args); i += 3 {
		log.Printf("# reading from %q and %q, writing to %s", args[i], args[i+1], args[i+2])
		err := rerank.WriteFeatureFile(registry, absoluteCounts, args[i], args[i+1], args[i+2], lowercaseWords)
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("# usage %s", util.MemoryUsage())
	}
}

func ExtractCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       ExtractFeatures,
		UsageLine: "extract <options> <train.nbest train.gold train.out> [dev.nbest dev.gold dev.out]*",
		Short:     "extracts reranker features from n-best parses",
		Long: `
extracts reranker features from n-best parses

	$ ./extract-spfeatures extract -c -i [options] train.nbest.gz train.gold train.gz > train.defs

Features are counted over the first (nbest, gold) pair, pruned, and
written as definitions to standard output; every (nbest, gold, out)
triple is then mapped to a feature count file. Output files ending in
.gz or .bz2 are compressed.

`,
		Flag: *flag.NewFlagSet("extract", flag.ExitOnError),
	}
	cmd.Flag.BoolVar(&absoluteCounts, "a", false, "Produce absolute feature counts (rather than relative counts)")
	cmd.Flag.BoolVar(&collectCorrect, "c", false, "Collect features from correct examples")
	cmd.Flag.IntVar(&debugLevel, "d", 0, "Debug output level")
	cmd.Flag.StringVar(&featureSet, "f", "", "Feature set name or .yaml feature setup file (default nfeatures)")
	cmd.Flag.BoolVar(&collectIncorrect, "i", false, "Collect features from incorrect examples")
	cmd.Flag.BoolVar(&lowercaseWords, "l", false, "Map all words to lower case as trees are read")
	cmd.Flag.IntVar(&minCount, "s", 5, "Number of sentences a feature must appear in not to be pruned")
	cmd.Flag.StringVar(&modelFile, "model", "", "Also write feature set and definitions as a gob model file")
	return cmd
}
