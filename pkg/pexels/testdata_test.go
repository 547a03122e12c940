package pexels

import (
	"encoding/json"
	"fmt"
)

// photoJSON builds a complete search record whose image URLs live under base
func photoJSON(id int, base, ext string) map[string]interface{} {
	orig := fmt.Sprintf("%s/photos/%d/pexels-photo-%d.%s", base, id, id, ext)
	return map[string]interface{}{
		"id":           id,
		"url":          fmt.Sprintf("https://www.pexels.com/photo/%d/", id),
		"photographer": fmt.Sprintf("Photographer %d", id),
		"alt":          fmt.Sprintf("photo number %d", id),
		"src": map[string]interface{}{
			"original": orig,
			"large2x":  orig + "?auto=compress&cs=tinysrgb&dpr=2&h=650&w=940",
			"large":    orig + "?auto=compress&cs=tinysrgb&h=650&w=940",
			"medium":   orig + "?auto=compress&cs=tinysrgb&h=350",
			"small":    orig + "?auto=compress&cs=tinysrgb&h=130",
			"tiny":     orig + "?auto=compress&cs=tinysrgb&dpr=1&fit=crop&h=200&w=280",
		},
	}
}

func mustRaw(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
