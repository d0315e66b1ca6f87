// Command tsql-smoke runs the shipped sample case against the in-memory
// fixture backend and verifies every metric produces a score in [0,1].
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/kyungjunleeme/Text2SQL/internal/eval"
	"github.com/kyungjunleeme/Text2SQL/internal/fixture"
	"github.com/kyungjunleeme/Text2SQL/internal/result"
	"github.com/kyungjunleeme/Text2SQL/internal/util"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	ctx := context.Background()
	b, err := fixture.Open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open fixture backend: %v\n", err)
		os.Exit(1)
	}
	defer util.CloseWithErr(b, "fixture backend")

	question, gold, pred := fixture.SampleCase()
	e := eval.New(b, eval.Options{Compare: result.DefaultCompareOptions()})
	rep := e.Run(ctx, []eval.TestCase{{ID: "q1", Question: question, GoldSQL: gold}}, map[string]string{"q1": pred})

	ok := true
	for _, out := range rep.Results[0].Metrics {
		if out.Score == nil || *out.Score < 0 || *out.Score > 1 {
			ok = false
			util.Errorf("metric %s produced no usable score (reason: %s)", out.Name, out.Reason)
			continue
		}
		util.Infof("%s: %.3f (%s)", out.Name, *out.Score, out.Reason)
	}
	if !ok {
		os.Exit(1)
	}
	util.Highlightf("smoke check passed")
}
