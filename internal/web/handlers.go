package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/cascade-dex/cpmm/internal/amm"
	"github.com/cascade-dex/cpmm/internal/types"
	"github.com/cascade-dex/cpmm/internal/utils"
)

// poolView is the wire representation of a pool snapshot.
type poolView struct {
	ID          string `json:"id"`
	AssetA      string `json:"asset_a"`
	AssetB      string `json:"asset_b"`
	ReserveA    string `json:"reserve_a"`
	ReserveB    string `json:"reserve_b"`
	TotalShares string `json:"total_shares"`
}

func newPoolView(snap types.PoolSnapshot) poolView {
	return poolView{
		ID:          string(snap.ID),
		AssetA:      snap.AssetA,
		AssetB:      snap.AssetB,
		ReserveA:    utils.FormatAmount(snap.ReserveA),
		ReserveB:    utils.FormatAmount(snap.ReserveB),
		TotalShares: utils.FormatAmount(snap.TotalShares),
	}
}

// poolFromPair resolves the {pair} path variable ("denomA:denomB", either order).
func (ws *WebServer) poolFromPair(r *http.Request) (*amm.Pool, error) {
	pair := mux.Vars(r)["pair"]
	parts := strings.SplitN(pair, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, amm.ErrPoolNotFound.Wrapf("malformed pair %q, want denomA:denomB", pair)
	}
	return ws.registry.GetPool(parts[0], parts[1])
}

func (ws *WebServer) handleCreatePool(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssetA string `json:"asset_a"`
		AssetB string `json:"asset_b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.AssetA == "" || req.AssetB == "" {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "asset_a and asset_b are required"})
		return
	}

	pool, err := ws.registry.CreatePool(ws.bank.GetOrCreate(req.AssetA), ws.bank.GetOrCreate(req.AssetB))
	if err != nil {
		ws.writeError(w, err)
		return
	}
	ws.writeJSON(w, http.StatusCreated, newPoolView(pool.Snapshot()))
}

func (ws *WebServer) handleListPools(w http.ResponseWriter, r *http.Request) {
	pools := ws.registry.Pools()
	views := make([]poolView, 0, len(pools))
	for _, pool := range pools {
		views = append(views, newPoolView(pool.Snapshot()))
	}
	ws.writeJSON(w, http.StatusOK, views)
}

func (ws *WebServer) handleGetReserves(w http.ResponseWriter, r *http.Request) {
	pool, err := ws.poolFromPair(r)
	if err != nil {
		ws.writeError(w, err)
		return
	}

	reserveA, reserveB := pool.GetReserves()
	ws.writeJSON(w, http.StatusOK, map[string]string{
		"asset_a":   pool.AssetA(),
		"asset_b":   pool.AssetB(),
		"reserve_a": utils.FormatAmount(reserveA),
		"reserve_b": utils.FormatAmount(reserveB),
	})
}

func (ws *WebServer) handleSwap(w http.ResponseWriter, r *http.Request) {
	pool, err := ws.poolFromPair(r)
	if err != nil {
		ws.writeError(w, err)
		return
	}

	var req struct {
		Caller   string `json:"caller"`
		AssetIn  string `json:"asset_in"`
		AssetOut string `json:"asset_out"`
		AmountIn string `json:"amount_in"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Caller == "" {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "caller is required"})
		return
	}

	amountIn, err := utils.ParseAmount(req.AmountIn)
	if err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount_in: " + err.Error()})
		return
	}

	amountOut, err := pool.Swap(req.Caller, req.AssetIn, req.AssetOut, amountIn)
	if err != nil {
		ws.writeError(w, err)
		return
	}

	ws.writeJSON(w, http.StatusOK, map[string]string{
		"amount_out": utils.FormatAmount(amountOut),
	})
}

func (ws *WebServer) handleAddLiquidity(w http.ResponseWriter, r *http.Request) {
	pool, err := ws.poolFromPair(r)
	if err != nil {
		ws.writeError(w, err)
		return
	}

	var req struct {
		Caller  string `json:"caller"`
		AmountA string `json:"amount_a"`
		AmountB string `json:"amount_b"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Caller == "" {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "caller is required"})
		return
	}

	amountA, err := utils.ParseAmount(req.AmountA)
	if err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount_a: " + err.Error()})
		return
	}
	amountB, err := utils.ParseAmount(req.AmountB)
	if err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount_b: " + err.Error()})
		return
	}

	actualA, actualB, shares, err := pool.AddLiquidity(req.Caller, amountA, amountB)
	if err != nil {
		ws.writeError(w, err)
		return
	}

	ws.writeJSON(w, http.StatusOK, map[string]string{
		"actual_a": utils.FormatAmount(actualA),
		"actual_b": utils.FormatAmount(actualB),
		"shares":   utils.FormatAmount(shares),
	})
}

func (ws *WebServer) handleRemoveLiquidity(w http.ResponseWriter, r *http.Request) {
	pool, err := ws.poolFromPair(r)
	if err != nil {
		ws.writeError(w, err)
		return
	}

	var req struct {
		Caller string `json:"caller"`
		Shares string `json:"shares"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Caller == "" {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "caller is required"})
		return
	}

	shares, err := utils.ParseAmount(req.Shares)
	if err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "shares: " + err.Error()})
		return
	}

	amountA, amountB, err := pool.RemoveLiquidity(req.Caller, shares)
	if err != nil {
		ws.writeError(w, err)
		return
	}

	ws.writeJSON(w, http.StatusOK, map[string]string{
		"amount_a": utils.FormatAmount(amountA),
		"amount_b": utils.FormatAmount(amountB),
	})
}

func (ws *WebServer) handleGetPosition(w http.ResponseWriter, r *http.Request) {
	pool, err := ws.poolFromPair(r)
	if err != nil {
		ws.writeError(w, err)
		return
	}

	holder := mux.Vars(r)["holder"]
	ws.writeJSON(w, http.StatusOK, map[string]string{
		"holder":       holder,
		"shares":       utils.FormatAmount(pool.Shares().BalanceOf(holder)),
		"total_shares": utils.FormatAmount(pool.TotalShares()),
	})
}

func (ws *WebServer) handleApprove(w http.ResponseWriter, r *http.Request) {
	denom := mux.Vars(r)["denom"]
	ledger := ws.bank.Get(denom)
	if ledger == nil {
		ws.writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown asset " + denom})
		return
	}

	var req struct {
		Owner   string `json:"owner"`
		Spender string `json:"spender"`
		Amount  string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount: " + err.Error()})
		return
	}
	if err := ledger.Approve(req.Owner, req.Spender, amount); err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ws.writeJSON(w, http.StatusOK, map[string]string{
		"owner":   req.Owner,
		"spender": req.Spender,
		"amount":  utils.FormatAmount(amount),
	})
}

func (ws *WebServer) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ledger := ws.bank.Get(vars["denom"])
	if ledger == nil {
		ws.writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown asset " + vars["denom"]})
		return
	}
	ws.writeJSON(w, http.StatusOK, map[string]string{
		"denom":   vars["denom"],
		"holder":  vars["holder"],
		"balance": utils.FormatAmount(ledger.BalanceOf(vars["holder"])),
	})
}

// handleFaucet mints test funds into the ledger. Development surface only.
func (ws *WebServer) handleFaucet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Denom  string `json:"denom"`
		Holder string `json:"holder"`
		Amount string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Denom == "" || req.Holder == "" {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "denom and holder are required"})
		return
	}

	amount, err := utils.ParseAmount(req.Amount)
	if err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount: " + err.Error()})
		return
	}

	ledger := ws.bank.GetOrCreate(req.Denom)
	if err := ledger.Mint(req.Holder, amount); err != nil {
		ws.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ws.writeJSON(w, http.StatusOK, map[string]string{
		"denom":   req.Denom,
		"holder":  req.Holder,
		"balance": utils.FormatAmount(ledger.BalanceOf(req.Holder)),
	})
}
