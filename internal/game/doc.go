// Package game implements the rules engine for BS, the bluffing card game.
//
// The main type is Engine, which owns the seats, the shared pile and the
// turn counter, and drives each turn through its phases: the acting
// participant plays one to four cards claiming the required rank, the other
// participants are polled in random order until one calls BS, the call is
// resolved by handing the pile to whoever was wrong, and the actor wins if
// their hand is empty.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	players := []*game.Participant{
//	    game.NewHuman("You"),
//	    game.NewAutomated("player1", rng),
//	    game.NewAutomated("player2", rng),
//	}
//	e, err := game.NewEngine(players, game.WithRand(rng), game.WithHumanIO(ui))
//	if err != nil { ... }
//	if err := e.DealStandard(); err != nil { ... }
//	winner, err := e.Run()
//
// # Presentation
//
// The engine never prints or sleeps. The human answers through HumanIO, and
// everything else (table snapshots, plays, calls, the winner) is published
// on the EventBus for the presentation layer to render at its own pace.
//
// # Deterministic Testing
//
// Every random choice (the shuffle, the polling order, bot plays and bot
// calls) is drawn from the randutil.Source passed with WithRand, so a seed
// replays a game exactly and a stub source pins a single decision.
package game
