package app

import (
	wasmkeeper "github.com/CosmWasm/wasmd/x/wasm/keeper"
	sdk "github.com/cosmos/cosmos-sdk/types"
	paramskeeper "github.com/cosmos/cosmos-sdk/x/params/keeper"
	transfertypes "github.com/cosmos/ibc-go/v2/modules/apps/transfer/types"
	porttypes "github.com/cosmos/ibc-go/v2/modules/core/05-port/types"

	"github.com/astroport/governance/x/assembly"
	assemblykeeper "github.com/astroport/governance/x/assembly/keeper"
	assemblytypes "github.com/astroport/governance/x/assembly/types"
	"github.com/astroport/governance/x/channel"
	"github.com/astroport/governance/x/emissions"
	emissionskeeper "github.com/astroport/governance/x/emissions/keeper"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
	"github.com/astroport/governance/x/outpost"
	outpostkeeper "github.com/astroport/governance/x/outpost/keeper"
	outposttypes "github.com/astroport/governance/x/outpost/types"
	"github.com/astroport/governance/x/tributes"
	tributeskeeper "github.com/astroport/governance/x/tributes/keeper"
	tributestypes "github.com/astroport/governance/x/tributes/types"
	"github.com/astroport/governance/x/vxastro"
	vxastrokeeper "github.com/astroport/governance/x/vxastro/keeper"
	vxastrotypes "github.com/astroport/governance/x/vxastro/types"
)

// BankKeeper is the subset of the SDK bank keeper used by all governance modules together
type BankKeeper interface {
	SendCoins(ctx sdk.Context, fromAddr sdk.AccAddress, toAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx sdk.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx sdk.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	BurnCoins(ctx sdk.Context, moduleName string, amt sdk.Coins) error
}

// IBCKeepers are the ibc-go keepers of the chain. Scoped is the scoped keeper of the governance IBC
// module, TransferScoped the one of the ICS20 transfer module.
type IBCKeepers struct {
	Channel        channel.ChannelKeeper
	Port           channel.PortKeeper
	Scoped         channel.ScopedKeeper
	TransferScoped channel.ScopedKeeper
	DenomTraces    channel.DenomTraceKeeper
}

// HubStoreKeys returns the store keys of the hub modules
func HubStoreKeys() map[string]*sdk.KVStoreKey {
	return sdk.NewKVStoreKeys(vxastrotypes.StoreKey, assemblytypes.StoreKey, emissionstypes.StoreKey, tributestypes.StoreKey)
}

// OutpostStoreKeys returns the store keys of the outpost modules
func OutpostStoreKeys() map[string]*sdk.KVStoreKey {
	return sdk.NewKVStoreKeys(vxastrotypes.StoreKey, outposttypes.StoreKey)
}

// HubKeepers are the governance modules of the hub chain
type HubKeepers struct {
	VxAstro   vxastrokeeper.Keeper
	Assembly  assemblykeeper.Keeper
	Emissions emissionskeeper.Keeper
	Tributes  tributeskeeper.Keeper

	router *ModuleRouter
}

// NewHubKeepers wires the hub modules. Proposal messages of the assembly are dispatched to the
// module router first and then to the optional nested messenger. vxASTRO changes refresh the
// emissions votes of the user.
func NewHubKeepers(
	keys map[string]*sdk.KVStoreKey,
	paramsKeeper paramskeeper.Keeper,
	bankKeeper BankKeeper,
	contracts HubContracts,
	ibc IBCKeepers,
	nested wasmkeeper.Messenger,
) HubKeepers {
	messenger := &deferredMessenger{}
	vxAstro := vxastrokeeper.NewKeeper(
		keys[vxastrotypes.StoreKey],
		paramsKeeper.Subspace(vxastrotypes.ModuleName),
		bankKeeper,
	)
	assemblyKeeper := assemblykeeper.NewKeeper(
		keys[assemblytypes.StoreKey],
		bankKeeper,
		contracts.Tracker,
		contracts.BuilderUnlock,
		contracts.IBCController,
		messenger,
	)
	emissionsKeeper := emissionskeeper.NewKeeper(
		keys[emissionstypes.StoreKey],
		paramsKeeper.Subspace(emissionstypes.ModuleName),
		bankKeeper,
		vxAstro,
		contracts.Tracker,
		contracts.Staking,
		contracts.Factory,
		contracts.Incentives,
		assemblyKeeper,
		channel.NewMemoTransfer(ibc.Channel, ibc.TransferScoped, bankKeeper, ibc.DenomTraces),
		ibc.Channel,
		ibc.Port,
		ibc.Scoped,
	)
	vxAstro.SetHooks(vxastrotypes.NewMultiVotingPowerHooks(emissionsKeeper.Hooks()))

	k := HubKeepers{
		VxAstro:   vxAstro,
		Assembly:  assemblyKeeper,
		Emissions: emissionsKeeper,
		Tributes: tributeskeeper.NewKeeper(
			keys[tributestypes.StoreKey],
			paramsKeeper.Subspace(tributestypes.ModuleName),
			bankKeeper,
			emissionsKeeper,
		),
	}
	k.router = NewModuleRouter().
		AddRoute(vxastrotypes.ModuleName, vxAstroHandler(k.VxAstro), vxastrokeeper.NewQuerier(k.VxAstro)).
		AddRoute(assemblytypes.ModuleName, assemblyHandler(k.Assembly), assemblykeeper.NewQuerier(k.Assembly)).
		AddRoute(emissionstypes.ModuleName, emissionsHandler(k.Emissions), emissionskeeper.NewQuerier(k.Emissions)).
		AddRoute(tributestypes.ModuleName, tributesHandler(k.Tributes), tributeskeeper.NewQuerier(k.Tributes))
	messenger.bind(k.router, nested)
	return k
}

// Router returns the router of the hub module messages and queries
func (k HubKeepers) Router() *ModuleRouter {
	return k.router
}

// AddIBCRoutes registers the voting channel handler and decorates the ICS20 transfer module with
// the emissions transfer callbacks
func (k HubKeepers) AddIBCRoutes(router *porttypes.Router, transfer porttypes.IBCModule) *porttypes.Router {
	return router.
		AddRoute(emissionstypes.ModuleName, emissions.NewIBCHandler(k.Emissions)).
		AddRoute(transfertypes.ModuleName, emissions.NewTransferCallbacks(transfer, k.Emissions))
}

// OutpostKeepers are the governance modules of an outpost chain
type OutpostKeepers struct {
	VxAstro vxastrokeeper.Keeper
	Outpost outpostkeeper.Keeper

	router *ModuleRouter
}

// NewOutpostKeepers wires the outpost modules. vxASTRO changes are relayed to the hub.
func NewOutpostKeepers(
	keys map[string]*sdk.KVStoreKey,
	paramsKeeper paramskeeper.Keeper,
	bankKeeper BankKeeper,
	incentives outposttypes.Incentives,
	ibc IBCKeepers,
) OutpostKeepers {
	vxAstro := vxastrokeeper.NewKeeper(
		keys[vxastrotypes.StoreKey],
		paramsKeeper.Subspace(vxastrotypes.ModuleName),
		bankKeeper,
	)
	outpostKeeper := outpostkeeper.NewKeeper(
		keys[outposttypes.StoreKey],
		paramsKeeper.Subspace(outposttypes.ModuleName),
		bankKeeper,
		vxAstro,
		incentives,
		ibc.Channel,
		ibc.Port,
		ibc.Scoped,
	)
	vxAstro.SetHooks(vxastrotypes.NewMultiVotingPowerHooks(outpostKeeper.Hooks()))

	k := OutpostKeepers{VxAstro: vxAstro, Outpost: outpostKeeper}
	k.router = NewModuleRouter().
		AddRoute(vxastrotypes.ModuleName, vxAstroHandler(k.VxAstro), vxastrokeeper.NewQuerier(k.VxAstro)).
		AddRoute(outposttypes.ModuleName, outpostHandler(k.Outpost), outpostkeeper.NewQuerier(k.Outpost))
	return k
}

// Router returns the router of the outpost module messages and queries
func (k OutpostKeepers) Router() *ModuleRouter {
	return k.router
}

// AddIBCRoutes registers the voting channel handler and decorates the ICS20 transfer module with
// the emissions receiver
func (k OutpostKeepers) AddIBCRoutes(router *porttypes.Router, transfer porttypes.IBCModule) *porttypes.Router {
	return router.
		AddRoute(outposttypes.ModuleName, outpost.NewIBCHandler(k.Outpost)).
		AddRoute(transfertypes.ModuleName, outpost.NewEmissionsReceiver(transfer, k.Outpost))
}

func vxAstroHandler(k vxastrokeeper.Keeper) MsgHandler {
	h := vxastro.NewHandler(k)
	return func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, raw []byte) (*sdk.Result, error) {
		var msg vxastrotypes.ExecuteMsg
		if err := decodeStrict(raw, &msg); err != nil {
			return nil, err
		}
		return h(ctx, sender, funds, msg)
	}
}

func assemblyHandler(k assemblykeeper.Keeper) MsgHandler {
	h := assembly.NewHandler(k)
	return func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, raw []byte) (*sdk.Result, error) {
		var msg assemblytypes.ExecuteMsg
		if err := decodeStrict(raw, &msg); err != nil {
			return nil, err
		}
		return h(ctx, sender, funds, msg)
	}
}

func emissionsHandler(k emissionskeeper.Keeper) MsgHandler {
	h := emissions.NewHandler(k)
	return func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, raw []byte) (*sdk.Result, error) {
		var msg emissionstypes.ExecuteMsg
		if err := decodeStrict(raw, &msg); err != nil {
			return nil, err
		}
		return h(ctx, sender, funds, msg)
	}
}

func tributesHandler(k tributeskeeper.Keeper) MsgHandler {
	h := tributes.NewHandler(k)
	return func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, raw []byte) (*sdk.Result, error) {
		var msg tributestypes.ExecuteMsg
		if err := decodeStrict(raw, &msg); err != nil {
			return nil, err
		}
		return h(ctx, sender, funds, msg)
	}
}

func outpostHandler(k outpostkeeper.Keeper) MsgHandler {
	h := outpost.NewHandler(k)
	return func(ctx sdk.Context, sender sdk.AccAddress, funds sdk.Coins, raw []byte) (*sdk.Result, error) {
		var msg outposttypes.ExecuteMsg
		if err := decodeStrict(raw, &msg); err != nil {
			return nil, err
		}
		return h(ctx, sender, funds, msg)
	}
}
