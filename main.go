package main

import (
	"github.com/lehigh-university-libraries/jatstemplate/cmd"

	// Register galley text parsers
	_ "github.com/lehigh-university-libraries/jatstemplate/textparser/pdftotext"
	_ "github.com/lehigh-university-libraries/jatstemplate/textparser/plain"
	_ "github.com/lehigh-university-libraries/jatstemplate/textparser/xhtml"
)

func main() {
	cmd.Execute()
}
