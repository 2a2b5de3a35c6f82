// Command pairingtool is a diagnostics CLI for the pairing library.
//
// Usage:
//
//	pairingtool params
//	pairingtool gen-prime -bits N [-safe | -strong]
//	pairingtool hash -group g1|g2 <message>
//	pairingtool selftest
//
// Flags:
//
//	--verbosity  Log level: debug, info, warn, error (default: warn)
//	--logfmt     Log output format: json or term (default: json)
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/bilinearlabs/pairing/pkg/bls12381"
	"github.com/bilinearlabs/pairing/pkg/bn"
	"github.com/bilinearlabs/pairing/pkg/log"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	fs := flag.NewFlagSet("pairingtool", flag.ContinueOnError)
	verbosity := fs.String("verbosity", "warn", "log level: debug, info, warn, error")
	logfmt := fs.String("logfmt", "json", "log output format: json or term")
	fs.Usage = usage
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level := log.ParseLevel(*verbosity)
	if *logfmt == "term" {
		log.SetDefault(log.NewTerm(level))
	} else {
		log.SetDefault(log.New(level))
	}

	rest := fs.Args()
	if len(rest) == 0 {
		usage()
		return 2
	}

	switch rest[0] {
	case "params":
		return runParams()
	case "gen-prime":
		return runGenPrime(rest[1:])
	case "hash":
		return runHash(rest[1:])
	case "selftest":
		return runSelftest()
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", rest[0])
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pairingtool [flags] <params | gen-prime | hash | selftest>")
}

func runParams() int {
	ctx := bls12381.NewCtx()
	defer ctx.Close()

	out, err := json.MarshalIndent(ctx.Params(), "", "  ")
	if err != nil {
		log.Error("encode params", "err", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func runGenPrime(args []string) int {
	fs := flag.NewFlagSet("gen-prime", flag.ContinueOnError)
	bits := fs.Int("bits", 256, "bit length of the prime")
	safe := fs.Bool("safe", false, "generate a safe prime p = 2q+1")
	strong := fs.Bool("strong", false, "generate a strong prime")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *safe && *strong {
		fmt.Fprintln(os.Stderr, "-safe and -strong are mutually exclusive")
		return 2
	}

	var (
		p   *bn.Int
		err error
	)
	switch {
	case *safe:
		p, err = bn.GenPrimeSafe(*bits)
	case *strong:
		p, err = bn.GenPrimeStrong(*bits)
	default:
		p, err = bn.GenPrime(*bits)
	}
	if err != nil {
		log.Error("prime generation failed", "bits", *bits, "err", err)
		return 1
	}
	fmt.Println(p.Text(16))
	return 0
}

func runHash(args []string) int {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	group := fs.String("group", "g1", "target group: g1 or g2")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pairingtool hash -group g1|g2 <message>")
		return 2
	}
	msg := []byte(fs.Arg(0))

	ctx := bls12381.NewCtx()
	defer ctx.Close()

	var enc []byte
	switch *group {
	case "g1":
		enc = ctx.HashToG1(msg).Bytes(true)
	case "g2":
		enc = ctx.HashToG2(msg).Bytes(true)
	default:
		fmt.Fprintf(os.Stderr, "unknown group %q\n", *group)
		return 2
	}
	fmt.Println(hexutil.Encode(enc))
	return 0
}

func runSelftest() int {
	ctx := bls12381.NewCtx()
	defer ctx.Close()

	p := ctx.G1MulGen(bn.NewUint64(5))
	q := ctx.G2MulGen(bn.NewUint64(7))
	lhs := ctx.Pair(p, q)
	rhs := bls12381.GTExpDig(ctx.GTGenerator(), 35)
	if !lhs.Equal(rhs) {
		fmt.Fprintln(os.Stderr, "FAIL: pairing is not bilinear")
		return 1
	}
	if !ctx.PairingCheck(
		[]*bls12381.PointG1{p, bls12381.G1Neg(p)},
		[]*bls12381.PointG2{q, q},
	) {
		fmt.Fprintln(os.Stderr, "FAIL: pairing product check")
		return 1
	}
	fmt.Println("ok")
	return 0
}
