package solidity_test

import (
	"reflect"
	"testing"

	"github.com/xab-mack/authsurface/internal/analysis"
	"github.com/xab-mack/authsurface/internal/model"
	"github.com/xab-mack/authsurface/internal/solidity"
)

const vaultSource = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.0;

contract Vault {
    address public owner;
    uint256 public balance;
    mapping(address => uint256) internal shares;

    modifier onlyOwner() {
        require(msg.sender == owner, "not owner");
        _;
    }

    constructor() {
        owner = msg.sender;
    }

    function withdraw() public {
        _check();
        balance = 0;
    }

    function _check() internal view {
        require(msg.sender == owner);
    }

    function donate() public payable {
        balance += msg.value;
        shares[msg.sender] += msg.value;
    }

    function setOwner(address o) public onlyOwner {
        owner = o;
    }
}
`

func build(t *testing.T, src string) *model.Program {
	t.Helper()
	t.Setenv("AUTHSURFACE_CACHE_DIR", t.TempDir())
	p, err := solidity.BuildProgram("vault.sol", src)
	if err != nil {
		t.Fatalf("BuildProgram: %v", err)
	}
	return p
}

func TestBuildProgramContractsAndStateVariables(t *testing.T) {
	p := build(t, vaultSource)
	if len(p.Contracts) != 1 {
		t.Fatalf("contracts = %d, want 1", len(p.Contracts))
	}
	c := p.Contracts[0]
	if c.Name != "Vault" {
		t.Fatalf("contract = %q, want Vault", c.Name)
	}
	want := []model.StateVariable{
		{Name: "owner", Type: "address", Visibility: "public", Location: "default"},
		{Name: "balance", Type: "uint256", Visibility: "public", Location: "default"},
		{Name: "shares", Type: "mapping(address=>uint256)", Visibility: "internal", Location: "default"},
	}
	if !reflect.DeepEqual(c.StateVariables, want) {
		t.Fatalf("state variables = %+v, want %+v", c.StateVariables, want)
	}
}

func TestBuildProgramFunctionsAndModifiers(t *testing.T) {
	c := build(t, vaultSource).Contracts[0]

	var fns, mods []string
	for _, f := range c.Functions {
		switch f.Kind {
		case model.KindFunction:
			fns = append(fns, f.Name)
		case model.KindModifier:
			mods = append(mods, f.Name)
		}
	}
	wantFns := []string{"constructor", "withdraw", "_check", "donate", "setOwner"}
	if !reflect.DeepEqual(fns, wantFns) {
		t.Errorf("functions = %v, want %v", fns, wantFns)
	}
	if !reflect.DeepEqual(mods, []string{"onlyOwner"}) {
		t.Errorf("modifiers = %v, want [onlyOwner]", mods)
	}

	setOwner := c.Function("setOwner")
	if len(setOwner.Modifiers) != 1 || setOwner.Modifiers[0].Name != "onlyOwner" {
		t.Errorf("setOwner modifiers not resolved: %v", setOwner.ModifierNames)
	}
	if setOwner.Visibility != "public" {
		t.Errorf("setOwner visibility = %q, want public", setOwner.Visibility)
	}
}

func TestBuildProgramResolvesInternalCalls(t *testing.T) {
	c := build(t, vaultSource).Contracts[0]
	withdraw := c.Function("withdraw")
	var resolved []string
	for _, call := range withdraw.Calls {
		if call.Target != nil {
			resolved = append(resolved, call.Target.Name)
		}
	}
	if !reflect.DeepEqual(resolved, []string{"_check"}) {
		t.Fatalf("withdraw resolved calls = %v, want [_check]", resolved)
	}
}

func TestBuildProgramGuardNodes(t *testing.T) {
	c := build(t, vaultSource).Contracts[0]
	check := c.Function("_check")
	var guards []model.Node
	for _, n := range check.Nodes {
		if n.IsConditional() {
			guards = append(guards, n)
		}
	}
	if len(guards) != 1 {
		t.Fatalf("guard nodes = %+v, want one", guards)
	}
	if guards[0].Expr != "msg.sender == owner" {
		t.Errorf("guard expr = %q, want %q", guards[0].Expr, "msg.sender == owner")
	}
	if !guards[0].ReadsIdentity(model.CallerIdentity) {
		t.Error("guard does not read msg.sender")
	}
}

func TestBuildProgramDropsRevertMessage(t *testing.T) {
	c := build(t, vaultSource).Contracts[0]
	only := c.Function("onlyOwner")
	if len(only.Nodes) == 0 {
		t.Fatal("onlyOwner has no nodes")
	}
	if only.Nodes[0].Expr != "msg.sender == owner" {
		t.Errorf("modifier guard = %q, want message stripped", only.Nodes[0].Expr)
	}
}

// Full pipeline over source text: the authorization.records match the
// hand-built model expectations.
func TestBuildProgramEndToEndRecords(t *testing.T) {
	c := build(t, vaultSource).Contracts[0]
	rep := analysis.AnalyzeContract(c)

	rows := map[string]model.FunctionRecord{}
	for _, r := range rep.Functions {
		rows[r.Function] = r
	}

	withdraw := rows["withdraw"]
	if want := []string{"balance"}; !reflect.DeepEqual(withdraw.StateVariablesWritten, want) {
		t.Errorf("withdraw writes = %v, want %v", withdraw.StateVariablesWritten, want)
	}
	if want := []string{"msg.sender == owner"}; !reflect.DeepEqual(withdraw.CallerConditions, want) {
		t.Errorf("withdraw guards = %v, want %v", withdraw.CallerConditions, want)
	}

	donate := rows["donate"]
	if want := []string{"balance", "shares"}; !reflect.DeepEqual(donate.StateVariablesWritten, want) {
		t.Errorf("donate writes = %v, want %v", donate.StateVariablesWritten, want)
	}
	if len(donate.CallerConditions) != 0 {
		t.Errorf("donate guards = %v, want empty", donate.CallerConditions)
	}

	setOwner := rows["setOwner"]
	if want := []string{"owner"}; !reflect.DeepEqual(setOwner.StateVariablesWritten, want) {
		t.Errorf("setOwner writes = %v, want %v", setOwner.StateVariablesWritten, want)
	}
	if want := []string{"msg.sender == owner"}; !reflect.DeepEqual(setOwner.CallerConditions, want) {
		t.Errorf("setOwner guards = %v, want %v", setOwner.CallerConditions, want)
	}
}

func TestBuildProgramCacheRoundTrip(t *testing.T) {
	t.Setenv("AUTHSURFACE_CACHE_DIR", t.TempDir())
	first, err := solidity.BuildProgram("vault.sol", vaultSource)
	if err != nil {
		t.Fatalf("BuildProgram: %v", err)
	}
	second, err := solidity.BuildProgram("vault.sol", vaultSource)
	if err != nil {
		t.Fatalf("BuildProgram (cached): %v", err)
	}
	got := analysis.AnalyzeProgram(second)
	want := analysis.AnalyzeProgram(first)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cached analysis differs:\n%+v\nvs\n%+v", got, want)
	}
}

func TestBuildProgramInterfaceDeclarations(t *testing.T) {
	src := `interface IVault {
    function withdraw() external;
    function donate() external payable;
}
`
	p := build(t, src)
	if len(p.Contracts) != 1 || p.Contracts[0].Name != "IVault" {
		t.Fatalf("contracts = %+v", p.Contracts)
	}
	c := p.Contracts[0]
	if len(c.Functions) != 2 {
		t.Fatalf("functions = %d, want 2", len(c.Functions))
	}
	for _, f := range c.Functions {
		if len(f.Nodes) != 0 {
			t.Errorf("%s: declaration has nodes %+v", f.Name, f.Nodes)
		}
	}
}

func TestBuildProgramSingleLineFunction(t *testing.T) {
	src := `contract C {
    uint256 internal total;
    function bump() public { total += 1; }
}
`
	c := build(t, src).Contracts[0]
	bump := c.Function("bump")
	if bump == nil {
		t.Fatal("bump not found")
	}
	rec := analysis.Record(bump)
	if want := []string{"total"}; !reflect.DeepEqual(rec.StateVariablesWritten, want) {
		t.Fatalf("bump writes = %v, want %v", rec.StateVariablesWritten, want)
	}
}
