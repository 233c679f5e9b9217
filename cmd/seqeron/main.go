// Command seqeron provides a CLI for sequence alignment and indexing.
//
// Usage:
//
//	seqeron [command] [options]
//
// Commands:
//
//	align       Align two sequences
//	msa         Multiple sequence alignment
//	search      Search a pattern across sequences
//	anchors     Find chained anchors across sequences
//	index       Show suffix tree structure
//	kmer        Count k-mers
//	info        Show sequence information
//	stats       Calculate sequence set statistics
//	version     Show version information
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/seqeron/seqeron-go/pkg/seqeron"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "align":
		alignCmd(os.Args[2:])
	case "msa":
		msaCmd(os.Args[2:])
	case "search":
		searchCmd(os.Args[2:])
	case "anchors":
		anchorsCmd(os.Args[2:])
	case "index":
		indexCmd(os.Args[2:])
	case "kmer":
		kmerCmd(os.Args[2:])
	case "info":
		infoCmd(os.Args[2:])
	case "stats":
		statsCmd(os.Args[2:])
	case "version":
		fmt.Println(seqeron.Info())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Seqeron - Sequence Alignment Tool

Usage:
  seqeron <command> [options]

Commands:
  align     Align two sequences
  msa       Multiple sequence alignment
  search    Search a pattern across sequences
  anchors   Find chained anchors across sequences
  index     Show suffix tree structure
  kmer      Count k-mers
  info      Show sequence information
  stats     Calculate sequence set statistics
  version   Show version information
  help      Show this help message

Use "seqeron <command> -h" for more information about a command.`)
}

// loadSequences reads sequences from a FASTA file or from repeated
// comma-separated -seq values.
func loadSequences(file, raw string) []*seqeron.Sequence {
	if file != "" {
		sequences, err := seqeron.ReadFASTA(file)
		if err != nil {
			log.Fatal("reading file", "file", file, "err", err)
		}
		return sequences
	}

	parts := strings.Split(raw, ",")
	sequences := make([]*seqeron.Sequence, 0, len(parts))
	for i, p := range parts {
		s, err := seqeron.NewSequence(strings.TrimSpace(p))
		if err != nil {
			log.Fatal("invalid sequence", "index", i, "err", err)
		}
		sequences = append(sequences, s)
	}
	return sequences
}

func alignCmd(args []string) {
	fs := flag.NewFlagSet("align", flag.ExitOnError)
	seq1 := fs.String("seq1", "", "First sequence")
	seq2 := fs.String("seq2", "", "Second sequence")
	mode := fs.String("mode", "local", "Alignment mode: local, global or semiglobal")
	match := fs.Int("match", 2, "Match score")
	mismatch := fs.Int("mismatch", -1, "Mismatch penalty")
	gapOpen := fs.Int("gap-open", -2, "Gap open penalty")
	gapExtend := fs.Int("gap-extend", -1, "Gap extend penalty")
	fs.Parse(args)

	if *seq1 == "" || *seq2 == "" {
		fmt.Fprintln(os.Stderr, "Error: Both -seq1 and -seq2 are required")
		fs.Usage()
		os.Exit(1)
	}

	s1, err := seqeron.NewSequence(*seq1)
	if err != nil {
		log.Fatal("invalid sequence 1", "err", err)
	}
	s2, err := seqeron.NewSequence(*seq2)
	if err != nil {
		log.Fatal("invalid sequence 2", "err", err)
	}

	scoring, err := seqeron.NewScoring(*match, *mismatch, *gapOpen, *gapExtend)
	if err != nil {
		log.Fatal("invalid scoring", "err", err)
	}

	var m seqeron.Mode
	switch *mode {
	case "local":
		m = seqeron.Local
	case "global":
		m = seqeron.Global
	case "semiglobal":
		m = seqeron.SemiGlobal
	default:
		log.Fatal("unknown mode", "mode", *mode)
	}

	result, err := seqeron.Align(s1, s2, scoring, m)
	if err != nil {
		log.Fatal("aligning sequences", "err", err)
	}

	if result.IsEmpty() {
		fmt.Println("No alignment found")
		return
	}

	formatted, err := seqeron.FormatAlignment(result, 60)
	if err != nil {
		log.Fatal("formatting alignment", "err", err)
	}
	fmt.Print(formatted)
	fmt.Printf("\nScore: %d  Identity: %.1f%%  CIGAR: %s\n",
		result.Score, result.Identity()*100, result.ToCIGAR())
}

func msaCmd(args []string) {
	fs := flag.NewFlagSet("msa", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file with sequences")
	seqStr := fs.String("seq", "", "Comma-separated sequences")
	classic := fs.Bool("classic", false, "Disable anchor acceleration")
	minAnchor := fs.Int("min-anchor", 0, "Minimum anchor length (0 = default)")
	fs.Parse(args)

	if *file == "" && *seqStr == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	sequences := loadSequences(*file, *seqStr)

	var result *seqeron.MSAResult
	var err error
	if *classic {
		result, err = seqeron.MultipleAlignClassic(sequences, nil)
	} else {
		result, err = seqeron.MultipleAlignWithOptions(sequences, seqeron.MSAOptions{
			MinAnchorLength: *minAnchor,
		})
	}
	if err != nil {
		log.Fatal("aligning sequences", "err", err)
	}

	for i, row := range result.AlignedSequences {
		fmt.Printf("seq%-3d %s\n", i+1, row)
	}
	fmt.Printf("cons   %s\n", result.Consensus)
	fmt.Printf("\nTotal score: %d\n", result.TotalScore)
}

func searchCmd(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file with sequences")
	seqStr := fs.String("seq", "", "Comma-separated sequences")
	pattern := fs.String("pattern", "", "Pattern to search for")
	fs.Parse(args)

	if *pattern == "" || (*file == "" && *seqStr == "") {
		fmt.Fprintln(os.Stderr, "Error: -pattern and one of -file or -seq are required")
		fs.Usage()
		os.Exit(1)
	}

	sequences := loadSequences(*file, *seqStr)

	tree, err := seqeron.BuildIndex(sequences)
	if err != nil {
		log.Fatal("building index", "err", err)
	}

	positions := seqeron.FindOccurrences(tree, *pattern)
	if len(positions) == 0 {
		fmt.Println("Pattern not found")
		return
	}

	for _, p := range positions {
		fmt.Printf("sequence %d, offset %d\n", p.SeqIndex+1, p.Offset)
	}
	fmt.Printf("\n%d occurrence(s)\n", len(positions))
}

func anchorsCmd(args []string) {
	fs := flag.NewFlagSet("anchors", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file with sequences")
	seqStr := fs.String("seq", "", "Comma-separated sequences")
	minLen := fs.Int("min-length", 0, "Minimum anchor length (0 = default)")
	fs.Parse(args)

	if *file == "" && *seqStr == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	sequences := loadSequences(*file, *seqStr)

	tree, err := seqeron.BuildIndex(sequences)
	if err != nil {
		log.Fatal("building index", "err", err)
	}

	chain, err := seqeron.FindAnchors(tree, *minLen)
	if err != nil {
		log.Fatal("finding anchors", "err", err)
	}

	if chain.IsEmpty() {
		fmt.Println("No anchors found")
		return
	}

	for i, a := range chain.Anchors {
		starts := make([]string, len(a.Starts))
		for s, off := range a.Starts {
			starts[s] = fmt.Sprintf("%d", off)
		}
		fmt.Printf("anchor %d: length %d, starts [%s]\n", i+1, a.Length, strings.Join(starts, ", "))
	}
	fmt.Printf("\nAnchored length: %d\n", chain.AnchoredLength())
}

func indexCmd(args []string) {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file with sequences")
	seqStr := fs.String("seq", "", "Comma-separated sequences")
	dump := fs.Bool("dump", false, "Print the full tree structure")
	fs.Parse(args)

	if *file == "" && *seqStr == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	sequences := loadSequences(*file, *seqStr)

	tree, err := seqeron.BuildIndex(sequences)
	if err != nil {
		log.Fatal("building index", "err", err)
	}

	if *dump {
		fmt.Print(tree.Dump())
		return
	}
	fmt.Println(tree.Summary())
}

func kmerCmd(args []string) {
	fs := flag.NewFlagSet("kmer", flag.ExitOnError)
	seqStr := fs.String("seq", "", "Sequence string to analyze")
	k := fs.Int("k", 4, "K-mer length")
	top := fs.Int("top", 10, "Number of top k-mers to show")
	fs.Parse(args)

	if *seqStr == "" {
		fmt.Fprintln(os.Stderr, "Error: -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	s, err := seqeron.NewSequence(*seqStr)
	if err != nil {
		log.Fatal("invalid sequence", "err", err)
	}

	counter, err := seqeron.CountKMers(s, *k)
	if err != nil {
		log.Fatal("counting k-mers", "err", err)
	}

	fmt.Printf("Total %d-mers: %d (%d unique)\n\n", *k, counter.Total(), counter.UniqueCount())
	for _, kc := range counter.MostFrequent(*top) {
		fmt.Printf("  %s  %d\n", kc.KMer, kc.Count)
	}
}

func infoCmd(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file to analyze")
	seqStr := fs.String("seq", "", "Sequence string to analyze")
	fs.Parse(args)

	if *file == "" && *seqStr == "" {
		fmt.Fprintln(os.Stderr, "Error: Either -file or -seq is required")
		fs.Usage()
		os.Exit(1)
	}

	sequences := loadSequences(*file, *seqStr)

	for i, s := range sequences {
		fmt.Printf("Sequence %d:\n", i+1)
		if s.ID != "" {
			fmt.Printf("  ID: %s\n", s.ID)
		}
		fmt.Printf("  Length: %d bp\n", s.Len())
		fmt.Printf("  GC Content: %.2f%%\n", s.GCContent()*100)
		fmt.Printf("  Type: %s\n", s.SeqType)
		fmt.Println()
	}
}

func statsCmd(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	file := fs.String("file", "", "FASTA file to analyze")
	fs.Parse(args)

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		fs.Usage()
		os.Exit(1)
	}

	sequences, err := seqeron.ReadFASTA(*file)
	if err != nil {
		log.Fatal("reading file", "file", *file, "err", err)
	}
	if len(sequences) == 0 {
		log.Fatal("no sequences found in file", "file", *file)
	}

	setStats, err := seqeron.SequenceSetStats(sequences)
	if err != nil {
		log.Fatal("calculating statistics", "err", err)
	}

	fmt.Println("Sequence Set Statistics")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Number of sequences: %d\n", setStats.Count)
	fmt.Printf("Total bases: %d\n", setStats.TotalBases)
	fmt.Printf("Length range: %d - %d bp\n", setStats.MinLength, setStats.MaxLength)
	fmt.Printf("Mean length: %.1f bp\n", setStats.MeanLength)
	fmt.Printf("Median length: %d bp\n", setStats.MedianLength)
	fmt.Printf("N50: %d bp\n", setStats.N50)
	fmt.Printf("Mean GC content: %.2f%%\n", setStats.MeanGCContent*100)
}
