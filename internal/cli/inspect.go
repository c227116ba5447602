package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wesleyorama2/jobboard/internal/http"
	"github.com/wesleyorama2/jobboard/internal/output"
	"github.com/wesleyorama2/jobboard/internal/schema"
)

// inspect prints the --extract values and the --schema result for resp.
func (a *app) inspect(resp *http.Response, extract []string, validator *schema.Schema) error {
	var failed []string

	if len(extract) > 0 {
		paths, err := parseExtract(extract)
		if err != nil {
			return err
		}
		values, lookupErr := resp.LookupAll(paths)

		names := make([]string, 0, len(paths))
		for name := range paths {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			value, ok := values[name]
			if !ok {
				fmt.Fprintf(a.stdout, "%s %s: not found at %s\n", output.ErrorIcon(a.noColor), name, paths[name])
				continue
			}
			fmt.Fprintf(a.stdout, "%s %s = %s\n", output.SuccessIcon(a.noColor), name, value)
		}
		if lookupErr != nil {
			failed = append(failed, "extract")
		}
	}

	if validator != nil {
		if err := validateBody(resp, validator); err != nil {
			fmt.Fprintf(a.stdout, "%s Schema validation failed\n", output.ErrorIcon(a.noColor))
			var verrs schema.ValidationErrors
			if errors.As(err, &verrs) {
				for _, verr := range verrs {
					fmt.Fprintf(a.stdout, "    %v\n", verr)
				}
			} else {
				fmt.Fprintf(a.stdout, "    %v\n", err)
			}
			failed = append(failed, "schema")
		} else {
			fmt.Fprintf(a.stdout, "%s Schema validation passed\n", output.SuccessIcon(a.noColor))
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("response inspection failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

func validateBody(resp *http.Response, validator *schema.Schema) error {
	if resp.Data == nil {
		return errors.New("response has no body")
	}
	return validator.Validate(resp.Data)
}

// parseExtract parses "name=path" pairs.
func parseExtract(raw []string) (map[string]string, error) {
	paths := make(map[string]string, len(raw))
	for _, item := range raw {
		name, path, found := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" || strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("invalid extract %q: expected name=$.path", item)
		}
		paths[name] = strings.TrimSpace(path)
	}
	return paths, nil
}
