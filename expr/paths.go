package expr

import (
	"fmt"
	"strings"

	"github.com/tracelab/workspaces-go/filters"
)

// KeyToServerPath renders a wire key as the dotted server path used in
// saved-view queries.
func KeyToServerPath(key filters.Key) (string, error) {
	switch key.Section {
	case "config":
		return "config." + key.Name, nil
	case "summary":
		return "summary_metrics." + key.Name, nil
	case "keys_info":
		return "keys_info.keys." + key.Name, nil
	case "tags":
		return "tags." + key.Name, nil
	case "run":
		return key.Name, nil
	}
	return "", fmt.Errorf("invalid key section %q for %q", key.Section, key.Name)
}

// ServerPathToKey resolves a dotted server path to a wire key. Paths with
// no recognized section prefix are run fields.
func ServerPathToKey(path string) filters.Key {
	switch {
	case strings.HasPrefix(path, "config."):
		return filters.Key{Section: "config", Name: strings.TrimPrefix(path, "config.")}
	case strings.HasPrefix(path, "summary_metrics."):
		return filters.Key{Section: "summary", Name: strings.TrimPrefix(path, "summary_metrics.")}
	case strings.HasPrefix(path, "keys_info.keys."):
		return filters.Key{Section: "keys_info", Name: strings.TrimPrefix(path, "keys_info.keys.")}
	case strings.HasPrefix(path, "tags."):
		return filters.Key{Section: "tags", Name: strings.TrimPrefix(path, "tags.")}
	}
	return filters.Key{Section: "run", Name: path}
}

// GroupByKey converts a groupby string like "group", "run.group" or
// "config.param" into a wire key. Config paths carry a ".value" token after
// the first segment ("config.nested.x" groups on "nested.value.x").
func GroupByKey(groupStr string) filters.Key {
	section, keyName := "run", groupStr
	if before, after, found := strings.Cut(groupStr, "."); found {
		section, keyName = before, after
	}

	keyName = ToBackendName(keyName)

	if section == "config" {
		segments := strings.Split(keyName, ".")
		if len(segments) < 2 || segments[1] != "value" {
			rest := ""
			if len(segments) > 1 {
				rest = "." + strings.Join(segments[1:], ".")
			}
			keyName = segments[0] + ".value" + rest
		}
	}

	return filters.Key{Section: section, Name: keyName}
}
