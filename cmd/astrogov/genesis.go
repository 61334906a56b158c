package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/astroport/governance/app"
	emissionstypes "github.com/astroport/governance/x/emissions/types"
)

const (
	flagChain        = "chain"
	flagAppStatePath = "app-state-path"
	flagValueType    = "type"

	flagController    = "controller"
	flagVotingChannel = "voting-channel"
	flagICS20Channel  = "ics20-channel"
	flagAstroDenom    = "astro-denom"
	flagAstroPool     = "astro-pool"
	flagAstroConstant = "astro-pool-constant"

	chainHub     = "hub"
	chainOutpost = "outpost"
)

// GenesisCmd groups the commands that read and alter the governance modules in a genesis file
func GenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "genesis",
		Short:                      "Governance genesis subcommands",
		SuggestionsMinimumDistance: 2,
	}
	cmd.AddCommand(
		GenesisInitCmd(),
		GenesisValidateCmd(),
		GenesisShowCmd(),
		GenesisSetCmd(),
		GenesisAddOutpostCmd(),
	)
	return cmd
}

// GenesisInitCmd writes the default genesis of all governance modules into the genesis file
func GenesisInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [genesis_file]",
		Short: "Set the default genesis of the governance modules",
		Long: `Set the default genesis of the governance modules. The file is created when it does not exist.
Existing module genesis is replaced, other modules are left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGenesisFile(cmd, args[0], true)
			if err != nil {
				return err
			}
			defaults, err := defaultGenesis(g.chain)
			if err != nil {
				return err
			}
			for _, module := range sortedModules(defaults) {
				if err := g.setRaw(module, defaults[module]); err != nil {
					return err
				}
			}
			return g.write(cmd)
		},
	}
	cmd.Flags().AddFlagSet(flagSetGenesis())
	return cmd
}

// GenesisValidateCmd decodes and validates the governance modules of the genesis file
func GenesisValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [genesis_file]",
		Short: "Validate the genesis of the governance modules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGenesisFile(cmd, args[0], false)
			if err != nil {
				return err
			}
			if err := g.validate(); err != nil {
				return err
			}
			g.logger.Info().Str("file", g.path).Str("chain", g.chain).Msg("genesis is valid")
			return nil
		},
	}
	cmd.Flags().AddFlagSet(flagSetGenesis())
	return cmd
}

// GenesisShowCmd prints the genesis of a single module
func GenesisShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [genesis_file] [module]",
		Short: "Print the genesis of a governance module",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGenesisFile(cmd, args[0], false)
			if err != nil {
				return err
			}
			state := g.module(args[1])
			if !state.Exists() {
				return errors.Errorf("no genesis for module %q", args[1])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), state.Raw)
			return err
		},
	}
	cmd.Flags().AddFlagSet(flagSetGenesis())
	return cmd
}

// GenesisSetCmd sets a single value of a module genesis. The result must be a valid genesis.
func GenesisSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set [genesis_file] [key] [value]",
		Short: "Set a value in the genesis of a governance module",
		Long: `Set a value in the genesis of a governance module. The key is the module name followed by the path
in the module genesis.

Example:
	astrogov genesis set genesis.json emissions.params.ibc_timeout 3600 --type uint
	astrogov genesis set genesis.json tributes.params.tribute_fee 1000000uastro --type coin
	`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGenesisFile(cmd, args[0], false)
			if err != nil {
				return err
			}
			valueType, err := cmd.Flags().GetString(flagValueType)
			if err != nil {
				return err
			}
			value, err := encodeValue(valueType, args[2])
			if err != nil {
				return err
			}
			if err := g.setRaw(args[1], value); err != nil {
				return err
			}
			return g.write(cmd)
		},
	}
	cmd.Flags().AddFlagSet(flagSetGenesis())
	cmd.Flags().String(flagValueType, "string", "The type of the value (string|uint|bool|coin|json)")
	return cmd
}

// GenesisAddOutpostCmd registers an outpost in the emissions genesis of the hub
func GenesisAddOutpostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-outpost [genesis_file] [bech32_prefix]",
		Short: "Add an outpost to the emissions genesis of the hub",
		Long: `Add an outpost to the emissions genesis of the hub. Without a voting channel the outpost is a
local outpost that receives its emissions on the hub.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGenesisFile(cmd, args[0], false)
			if err != nil {
				return err
			}
			if g.chain != chainHub {
				return errors.New("outposts are registered on the hub")
			}
			outpost, err := outpostFromFlags(cmd.Flags(), args[1])
			if err != nil {
				return err
			}
			state := emissionstypes.DefaultGenesisState()
			if raw := g.module(emissionstypes.ModuleName); raw.Exists() {
				if err := json.Unmarshal([]byte(raw.Raw), &state); err != nil {
					return errors.Wrap(err, "emissions genesis")
				}
			}
			for _, o := range state.Outposts {
				if o.Prefix == outpost.Prefix {
					return errors.Errorf("outpost %s already exists", outpost.Prefix)
				}
			}
			state.Outposts = append(state.Outposts, outpost)
			bz, err := json.Marshal(state)
			if err != nil {
				return errors.Wrap(err, "marshal emissions genesis")
			}
			if err := g.setRaw(emissionstypes.ModuleName, bz); err != nil {
				return err
			}
			return g.write(cmd)
		},
	}
	cmd.Flags().AddFlagSet(flagSetGenesis())
	cmd.Flags().AddFlagSet(flagSetOutpost())
	return cmd
}

func flagSetGenesis() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(flagChain, chainHub, "The governance modules of the chain (hub|outpost)")
	fs.String(flagAppStatePath, "app_state", "The path of the application state in the genesis file, empty for the root")
	return fs
}

func flagSetOutpost() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(flagController, "", "The bech32 address the emissions are sent to on the outpost")
	fs.String(flagVotingChannel, "", "The channel of the emissions port to the outpost")
	fs.String(flagICS20Channel, "", "The ICS20 channel to the outpost")
	fs.String(flagAstroDenom, "", "The denom of ASTRO on the outpost")
	fs.String(flagAstroPool, "", "The ASTRO pool on the outpost that receives constant emissions")
	fs.String(flagAstroConstant, "0", "The constant emissions of the ASTRO pool per epoch")
	return fs
}

func outpostFromFlags(fs *flag.FlagSet, prefix string) (emissionstypes.OutpostInfo, error) {
	strs := make(map[string]string)
	for _, name := range []string{flagController, flagVotingChannel, flagICS20Channel, flagAstroDenom, flagAstroPool, flagAstroConstant} {
		v, err := fs.GetString(name)
		if err != nil {
			return emissionstypes.OutpostInfo{}, err
		}
		strs[name] = strings.TrimSpace(v)
	}
	r := emissionstypes.OutpostInfo{Prefix: prefix, AstroDenom: strs[flagAstroDenom]}
	if strs[flagVotingChannel] != "" {
		r.Params = &emissionstypes.OutpostParams{
			EmissionsController: strs[flagController],
			VotingChannel:       strs[flagVotingChannel],
			ICS20Channel:        strs[flagICS20Channel],
		}
	}
	if strs[flagAstroPool] != "" {
		constant, ok := sdk.NewIntFromString(strs[flagAstroConstant])
		if !ok {
			return emissionstypes.OutpostInfo{}, errors.Errorf("invalid %s: %q", flagAstroConstant, strs[flagAstroConstant])
		}
		r.AstroPoolConfig = &emissionstypes.AstroPoolConfig{AstroPool: strs[flagAstroPool], Constant: constant}
	}
	return r, nil
}

// encodeValue returns the JSON encoding of a command line value
func encodeValue(valueType, value string) ([]byte, error) {
	var v interface{}
	var err error
	switch valueType {
	case "string":
		v = value
	case "uint":
		v, err = cast.ToUint64E(value)
	case "bool":
		v, err = cast.ToBoolE(value)
	case "coin":
		v, err = sdk.ParseCoinNormalized(value)
	case "json":
		if !gjson.Valid(value) {
			return nil, errors.Errorf("invalid json value: %s", value)
		}
		return []byte(value), nil
	default:
		return nil, errors.Errorf("unsupported value type %q", valueType)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%s value", valueType)
	}
	return json.Marshal(v)
}

func defaultGenesis(chain string) (app.GenesisState, error) {
	switch chain {
	case chainHub:
		return app.NewDefaultHubGenesisState(), nil
	case chainOutpost:
		return app.NewDefaultOutpostGenesisState(), nil
	default:
		return nil, errors.Errorf("unsupported chain %q", chain)
	}
}

func sortedModules(g app.GenesisState) []string {
	r := make([]string, 0, len(g))
	for m := range g {
		r = append(r, m)
	}
	sort.Strings(r)
	return r
}

// genesisFile is a genesis file in memory. The governance modules are located at the app state path.
type genesisFile struct {
	path    string
	chain   string
	appPath string
	raw     []byte
	logger  zerolog.Logger
}

func readGenesisFile(cmd *cobra.Command, path string, allowMissing bool) (*genesisFile, error) {
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}
	chain, err := cmd.Flags().GetString(flagChain)
	if err != nil {
		return nil, err
	}
	if _, err := defaultGenesis(chain); err != nil {
		return nil, err
	}
	appPath, err := cmd.Flags().GetString(flagAppStatePath)
	if err != nil {
		return nil, err
	}
	raw, err := ioutil.ReadFile(path)
	switch {
	case os.IsNotExist(err) && allowMissing:
		raw = []byte("{}")
	case err != nil:
		return nil, errors.Wrap(err, "read genesis file")
	case !gjson.ValidBytes(raw):
		return nil, errors.Errorf("genesis file %s is not valid json", path)
	}
	logger.Debug().Str("file", path).Int("bytes", len(raw)).Msg("genesis loaded")
	return &genesisFile{path: path, chain: chain, appPath: appPath, raw: raw, logger: logger}, nil
}

func (g genesisFile) modulePath(key string) string {
	if g.appPath == "" {
		return key
	}
	return g.appPath + "." + key
}

func (g genesisFile) module(name string) gjson.Result {
	return gjson.GetBytes(g.raw, g.modulePath(name))
}

func (g *genesisFile) setRaw(key string, value []byte) error {
	module := strings.SplitN(key, ".", 2)[0]
	defaults, _ := defaultGenesis(g.chain)
	if _, ok := defaults[module]; !ok {
		return errors.Errorf("unknown %s module %q", g.chain, module)
	}
	raw, err := sjson.SetRawBytes(g.raw, g.modulePath(key), value)
	if err != nil {
		return errors.Wrapf(err, "set %s", key)
	}
	g.raw = raw
	return nil
}

// governance returns the genesis of the governance modules. Other modules of the app state are ignored.
func (g genesisFile) governance() app.GenesisState {
	defaults, _ := defaultGenesis(g.chain)
	r := make(app.GenesisState, len(defaults))
	for module := range defaults {
		if state := g.module(module); state.Exists() {
			r[module] = json.RawMessage(state.Raw)
		}
	}
	return r
}

func (g genesisFile) validate() error {
	var err error
	switch g.chain {
	case chainHub:
		_, err = app.DecodeHubGenesis(g.governance())
	case chainOutpost:
		_, err = app.DecodeOutpostGenesis(g.governance())
	}
	return errors.Wrapf(err, "%s genesis", g.chain)
}

// write validates the governance modules and stores the file
func (g genesisFile) write(cmd *cobra.Command) error {
	if err := g.validate(); err != nil {
		return err
	}
	if err := ioutil.WriteFile(g.path, g.raw, 0600); err != nil {
		return errors.Wrap(err, "write genesis file")
	}
	g.logger.Info().Str("file", g.path).Str("command", cmd.Name()).Msg("genesis updated")
	return nil
}
