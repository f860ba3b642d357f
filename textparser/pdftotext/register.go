package pdftotext

import "github.com/lehigh-university-libraries/jatstemplate/textparser"

var _ textparser.Parser = (*Parser)(nil)

func init() {
	textparser.Register(&Parser{})
}
