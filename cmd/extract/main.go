// extract decodes one ADVANCE mode stage out of an iNES ROM image and
// prints it in the solver's problem text form.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/domino14/flipull/rom"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatal().Msgf("usage: extract <rom-file> <stage 1..%d>", rom.NumStages)
	}

	stage, err := strconv.Atoi(os.Args[2])
	if err != nil {
		log.Fatal().Err(err).Msg("stage is not a number")
	}

	r, err := rom.FromINESFile(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load ROM")
	}
	log.Info().Str("fingerprint", fmt.Sprintf("%016x", r.Fingerprint())).Msg("rom-loaded")

	prob, err := rom.ExtractStage(r, stage)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot extract stage")
	}

	fmt.Print(prob)
}
