// Package conflate decides, for an incoming address and the proximal
// persistent addresses sharing its house number, whether the feature is
// new, modifies an existing record, or needs no action.
package conflate

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/street-conflate/internal/linker"
	"github.com/street-conflate/internal/types"
)

// Action tags an output feature for the persistent store.
type Action string

const (
	ActionCreate  Action = "create"
	ActionModify  Action = "modify"
	ActionDelete  Action = "delete"
	ActionRestore Action = "restore"
	ActionNone    Action = "none"
)

// Compare matches an address against proximal persistent addresses and
// returns the id of the matched record, or nil when the address should
// be considered new. Persistents must be ordered by ascending distance.
func Compare(addr *types.Address, persistents []*types.Address) (*int64, error) {
	if len(persistents) == 0 {
		return nil, nil
	}

	primary := linker.NewLink(0, addr.Names)
	potentials := make([]linker.Link, len(persistents))
	for i, persistent := range persistents {
		if persistent.ID == nil {
			return nil, fmt.Errorf("persistent address missing id")
		}
		potentials[i] = linker.NewLink(*persistent.ID, persistent.Names)
	}

	result, err := linker.Match(primary, potentials, true)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}
	return &result.ID, nil
}

// Decide resolves the conflation outcome. A matched record absorbing
// new name synonyms comes back merged and tagged modify; an unmatched
// address is tagged create.
func Decide(addr *types.Address, persistents []*types.Address) (Action, *types.Address, error) {
	matchID, err := Compare(addr, persistents)
	if err != nil {
		return ActionNone, nil, err
	}
	if matchID == nil {
		return ActionCreate, addr, nil
	}

	var persistent *types.Address
	for _, p := range persistents {
		if p.ID != nil && *p.ID == *matchID {
			persistent = p
			break
		}
	}
	if persistent == nil {
		return ActionNone, nil, nil
	}

	if !persistent.Names.HasDiff(addr.Names) {
		// every synonym already stored
		return ActionNone, persistent, nil
	}

	persistent.Names.Concat(addr.Names)
	persistent.Names.Empty()
	persistent.Names.Sort()
	persistent.Names.Dedupe()
	return ActionModify, persistent, nil
}

// OutputFeature is the conflation output shape: a GeoJSON feature with
// the action and version carried as top level members.
type OutputFeature struct {
	ID         *int64                 `json:"id,omitempty"`
	Type       string                 `json:"type"`
	Action     Action                 `json:"action,omitempty"`
	Version    *int64                 `json:"version,omitempty"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   *geojson.Geometry      `json:"geometry"`
}

// Feature renders an address with its action tag. Generated synonyms
// are omitted unless requested.
func Feature(addr *types.Address, action Action, generated bool) *OutputFeature {
	names := make([]types.InputName, 0, len(addr.Names.Names))
	for _, name := range addr.Names.Names {
		if !generated && name.Source == types.SourceGenerated {
			continue
		}
		names = append(names, types.InputName{Display: name.Display, Priority: name.Priority})
	}

	props := make(map[string]interface{}, len(addr.Props)+3)
	for k, v := range addr.Props {
		props[k] = v
	}
	props["street"] = names
	props["number"] = addr.Number
	if addr.Source != "" {
		props["source"] = addr.Source
	}

	out := &OutputFeature{
		ID:         addr.ID,
		Type:       "Feature",
		Properties: props,
		Geometry:   geojson.NewGeometry(addr.Geom),
	}
	if action != ActionNone {
		out.Action = action
		if action != ActionCreate {
			version := addr.Version
			out.Version = &version
		}
	}
	return out
}
