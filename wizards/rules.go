package wizards

import (
	"regexp"

	"github.com/BrianJOC/ndx-builder/fieldform"
	"github.com/BrianJOC/ndx-builder/schema"
)

var (
	identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	namespacePattern  = regexp.MustCompile(`^ndx-[a-z0-9]+(-[a-z0-9]+)*$`)
)

func init() {
	rules := map[string]func(string) bool{
		"identifier": identifierPattern.MatchString,
		"ndxname":    namespacePattern.MatchString,
		"shape": func(v string) bool {
			_, ok := schema.ParseShape(v)
			return ok
		},
	}
	for tag, fn := range rules {
		if err := fieldform.RegisterRule(tag, fn); err != nil {
			panic(err)
		}
	}
}
