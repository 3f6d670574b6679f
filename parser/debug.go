package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

var (
	ISTAT_DEBUG *bool
)

func Debug(arg interface{}) {
	spew.Dump(arg)
}

func DebugPrint(fmt_str string, v ...interface{}) {
	if ISTAT_DEBUG == nil {
		// os.Environ() seems very expensive in Go so we cache it.
		for _, x := range os.Environ() {
			if strings.HasPrefix(x, "ISTAT_DEBUG=") {
				value := true
				ISTAT_DEBUG = &value
				break
			}
		}
	}

	if ISTAT_DEBUG == nil {
		value := false
		ISTAT_DEBUG = &value
	}

	if *ISTAT_DEBUG {
		fmt.Printf(fmt_str, v...)
	}
}
