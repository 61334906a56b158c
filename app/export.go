package app

import (
	"encoding/json"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	assemblykeeper "github.com/astroport/governance/x/assembly/keeper"
	assemblytypes "github.com/astroport/governance/x/assembly/types"
	emissionskeeper "github.com/astroport/governance/x/emissions/keeper"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	outpostkeeper "github.com/astroport/governance/x/outpost/keeper"
	outposttypes "github.com/astroport/governance/x/outpost/types"
	tributeskeeper "github.com/astroport/governance/x/tributes/keeper"
	tributestypes "github.com/astroport/governance/x/tributes/types"
	vxastrokeeper "github.com/astroport/governance/x/vxastro/keeper"
	vxastrotypes "github.com/astroport/governance/x/vxastro/types"
)

// GenesisState of the governance modules, keyed by module name. Each value is the JSON encoded
// genesis of the module.
type GenesisState map[string]json.RawMessage

// NewDefaultHubGenesisState returns the default genesis of all hub modules
func NewDefaultHubGenesisState() GenesisState {
	return GenesisState{
		vxastrotypes.ModuleName:   mustMarshalJSON(vxastrotypes.DefaultGenesisState()),
		assemblytypes.ModuleName:  mustMarshalJSON(assemblytypes.DefaultGenesisState()),
		emissionstypes.ModuleName: mustMarshalJSON(emissionstypes.DefaultGenesisState()),
		tributestypes.ModuleName:  mustMarshalJSON(tributestypes.DefaultGenesisState()),
	}
}

// NewDefaultOutpostGenesisState returns the default genesis of all outpost modules
func NewDefaultOutpostGenesisState() GenesisState {
	return GenesisState{
		vxastrotypes.ModuleName: mustMarshalJSON(vxastrotypes.DefaultGenesisState()),
		outposttypes.ModuleName: mustMarshalJSON(outposttypes.DefaultGenesisState()),
	}
}

// HubGenesis is the decoded genesis of the hub modules
type HubGenesis struct {
	VxAstro   vxastrotypes.GenesisState
	Assembly  assemblytypes.GenesisState
	Emissions emissionstypes.GenesisState
	Tributes  tributestypes.GenesisState
}

// DecodeHubGenesis decodes and validates the hub module genesis. Modules missing in the state get
// their default genesis.
func DecodeHubGenesis(g GenesisState) (HubGenesis, error) {
	r := HubGenesis{
		VxAstro:   vxastrotypes.DefaultGenesisState(),
		Assembly:  assemblytypes.DefaultGenesisState(),
		Emissions: emissionstypes.DefaultGenesisState(),
		Tributes:  tributestypes.DefaultGenesisState(),
	}
	if err := decodeModules(g, map[string]interface{}{
		vxastrotypes.ModuleName:   &r.VxAstro,
		assemblytypes.ModuleName:  &r.Assembly,
		emissionstypes.ModuleName: &r.Emissions,
		tributestypes.ModuleName:  &r.Tributes,
	}); err != nil {
		return HubGenesis{}, err
	}
	validators := []struct {
		module string
		check  func() error
	}{
		{vxastrotypes.ModuleName, func() error { return vxastrotypes.ValidateGenesis(r.VxAstro) }},
		{assemblytypes.ModuleName, func() error { return assemblytypes.ValidateGenesis(r.Assembly) }},
		{emissionstypes.ModuleName, func() error { return emissionstypes.ValidateGenesis(r.Emissions) }},
		{tributestypes.ModuleName, func() error { return tributestypes.ValidateGenesis(r.Tributes) }},
	}
	for _, v := range validators {
		if err := v.check(); err != nil {
			return HubGenesis{}, sdkerrors.Wrap(err, v.module)
		}
	}
	return r, nil
}

// InitGenesis initializes all hub modules with the given genesis
func (k HubKeepers) InitGenesis(ctx sdk.Context, g GenesisState) error {
	data, err := DecodeHubGenesis(g)
	if err != nil {
		return err
	}
	vxastrokeeper.InitGenesis(ctx, k.VxAstro, data.VxAstro)
	assemblykeeper.InitGenesis(ctx, k.Assembly, data.Assembly)
	emissionskeeper.InitGenesis(ctx, k.Emissions, data.Emissions)
	tributeskeeper.InitGenesis(ctx, k.Tributes, data.Tributes)
	return nil
}

// ExportGenesis exports the state of all hub modules
func (k HubKeepers) ExportGenesis(ctx sdk.Context) GenesisState {
	return GenesisState{
		vxastrotypes.ModuleName:   mustMarshalJSON(vxastrokeeper.ExportGenesis(ctx, k.VxAstro)),
		assemblytypes.ModuleName:  mustMarshalJSON(assemblykeeper.ExportGenesis(ctx, k.Assembly)),
		emissionstypes.ModuleName: mustMarshalJSON(emissionskeeper.ExportGenesis(ctx, k.Emissions)),
		tributestypes.ModuleName:  mustMarshalJSON(tributeskeeper.ExportGenesis(ctx, k.Tributes)),
	}
}

// OutpostGenesis is the decoded genesis of the outpost modules
type OutpostGenesis struct {
	VxAstro vxastrotypes.GenesisState
	Outpost outposttypes.GenesisState
}

// DecodeOutpostGenesis decodes and validates the outpost module genesis. Modules missing in the state
// get their default genesis.
func DecodeOutpostGenesis(g GenesisState) (OutpostGenesis, error) {
	r := OutpostGenesis{
		VxAstro: vxastrotypes.DefaultGenesisState(),
		Outpost: outposttypes.DefaultGenesisState(),
	}
	if err := decodeModules(g, map[string]interface{}{
		vxastrotypes.ModuleName: &r.VxAstro,
		outposttypes.ModuleName: &r.Outpost,
	}); err != nil {
		return OutpostGenesis{}, err
	}
	if err := vxastrotypes.ValidateGenesis(r.VxAstro); err != nil {
		return OutpostGenesis{}, sdkerrors.Wrap(err, vxastrotypes.ModuleName)
	}
	if err := outposttypes.ValidateGenesis(r.Outpost); err != nil {
		return OutpostGenesis{}, sdkerrors.Wrap(err, outposttypes.ModuleName)
	}
	return r, nil
}

// InitGenesis initializes all outpost modules with the given genesis
func (k OutpostKeepers) InitGenesis(ctx sdk.Context, g GenesisState) error {
	data, err := DecodeOutpostGenesis(g)
	if err != nil {
		return err
	}
	vxastrokeeper.InitGenesis(ctx, k.VxAstro, data.VxAstro)
	outpostkeeper.InitGenesis(ctx, k.Outpost, data.Outpost)
	return nil
}

// ExportGenesis exports the state of all outpost modules
func (k OutpostKeepers) ExportGenesis(ctx sdk.Context) GenesisState {
	return GenesisState{
		vxastrotypes.ModuleName: mustMarshalJSON(vxastrokeeper.ExportGenesis(ctx, k.VxAstro)),
		outposttypes.ModuleName: mustMarshalJSON(outpostkeeper.ExportGenesis(ctx, k.Outpost)),
	}
}

// decodeModules unmarshals the genesis of every known module. Unknown modules are rejected.
func decodeModules(g GenesisState, targets map[string]interface{}) error {
	for module, bz := range g {
		target, ok := targets[module]
		if !ok {
			return sdkerrors.Wrapf(sdkerrors.ErrInvalidRequest, "unknown module %q", module)
		}
		if err := decodeStrict(bz, target); err != nil {
			return sdkerrors.Wrap(err, module)
		}
	}
	return nil
}

func mustMarshalJSON(o interface{}) json.RawMessage {
	bz, err := json.Marshal(o)
	if err != nil {
		panic(err)
	}
	return bz
}
