package task

import "strings"

// TitleValidator is the default Validator: a title is valid when it is not
// blank after trimming.
type TitleValidator struct{}

func (TitleValidator) ValidTitle(title string) bool {
	return strings.TrimSpace(title) != ""
}
