package monitoring

import "strings"

// getSegmentName shortens a runtime function name to package.Receiver.Method.
func getSegmentName(fullFuncName string) string {
	name := fullFuncName[strings.LastIndex(fullFuncName, "/")+1:]

	parts := strings.Split(name, ".")
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.Trim(p, "(*)"); p != "" {
			kept = append(kept, p)
		}
	}

	return strings.Join(kept, ".")
}
