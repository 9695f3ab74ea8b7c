package game

import (
	"errors"
	"testing"

	"github.com/pitbosslabs/pitboss/internal/deck"
	"github.com/pitbosslabs/pitboss/internal/randutil"
)

// riggedEngine builds an engine dealing the given cards in order,
// recording every exposed card.
func riggedEngine(rule DealerRule, cards []deck.Card) (*Engine, *[]deck.Card) {
	var exposed []deck.Card
	shoe := NewShoeFromCards(DefaultPenetration, randutil.New(1), cards)
	player := NewPlayer(1000, DefaultMaxSplits)
	dealer := NewDealer(rule)
	engine := NewEngine(shoe, player, dealer, DefaultBlackjackPayout, func(c deck.Card) {
		exposed = append(exposed, c)
	})
	return engine, &exposed
}

func TestStartRoundDealOrderAndExposure(t *testing.T) {
	p1 := card(deck.Ten, deck.Clubs)
	up := card(deck.Six, deck.Spades)
	p2 := card(deck.Nine, deck.Diamonds)
	hole := card(deck.Nine, deck.Hearts)

	engine, exposed := riggedEngine(H17, []deck.Card{p1, up, p2, hole})
	hand, upcard, err := engine.StartRound(10)
	if err != nil {
		t.Fatalf("start round failed: %v", err)
	}

	if upcard != up {
		t.Errorf("expected upcard %s, got %s", up, upcard)
	}
	if hand.Cards[0] != p1 || hand.Cards[1] != p2 {
		t.Error("player cards dealt out of order")
	}

	// The hole card must not be exposed at deal time.
	want := []deck.Card{p1, up, p2}
	if len(*exposed) != len(want) {
		t.Fatalf("expected %d exposed cards, got %d", len(want), len(*exposed))
	}
	for i, c := range want {
		if (*exposed)[i] != c {
			t.Errorf("exposure %d: expected %s, got %s", i, c, (*exposed)[i])
		}
	}
}

// Scenario: player stands on 19, dealer's hard 15 draws a 7 and busts.
func TestRoundPlayerStandsDealerBusts(t *testing.T) {
	engine, exposed := riggedEngine(H17, []deck.Card{
		card(deck.Ten, deck.Clubs),   // player
		card(deck.Six, deck.Spades),  // upcard
		card(deck.Nine, deck.Diamonds), // player
		card(deck.Nine, deck.Hearts), // hole
		card(deck.Seven, deck.Clubs), // dealer hit -> 22
	})
	engine.StartRound(10)

	if summary := engine.CheckEarlyBlackjack(); summary != nil {
		t.Fatal("no early resolution expected")
	}
	if _, err := engine.ExecuteAction(ActionStand, 0); err != nil {
		t.Fatalf("stand failed: %v", err)
	}
	if err := engine.PlayDealer(); err != nil {
		t.Fatalf("dealer play failed: %v", err)
	}

	summary := engine.ResolveRound()
	if len(summary.HandResults) != 1 {
		t.Fatalf("expected one hand result, got %d", len(summary.HandResults))
	}
	hr := summary.HandResults[0]
	if hr.Outcome != OutcomeWin || hr.Payout != 10 {
		t.Errorf("expected WIN +10, got %s %+.2f", hr.Outcome, hr.Payout)
	}
	if engine.Player.Bankroll != 1010 {
		t.Errorf("expected bankroll 1010, got %.2f", engine.Player.Bankroll)
	}

	// Hole card and dealer hit are exposed during dealer play, in order.
	tail := (*exposed)[len(*exposed)-2:]
	if tail[0] != card(deck.Nine, deck.Hearts) || tail[1] != card(deck.Seven, deck.Clubs) {
		t.Errorf("expected hole then hit exposed last, got %v", tail)
	}
}

// Scenario: player natural, dealer shows ten without a natural. Early
// resolution pays 3:2.
func TestEarlyPlayerBlackjack(t *testing.T) {
	engine, exposed := riggedEngine(H17, []deck.Card{
		card(deck.Ace, deck.Spades),  // player
		card(deck.Ten, deck.Clubs),   // upcard
		card(deck.King, deck.Diamonds), // player
		card(deck.Five, deck.Hearts), // hole
	})
	engine.StartRound(10)

	summary := engine.CheckEarlyBlackjack()
	if summary == nil {
		t.Fatal("expected early resolution")
	}
	hr := summary.HandResults[0]
	if hr.Outcome != OutcomeBlackjack {
		t.Errorf("expected BLACKJACK, got %s", hr.Outcome)
	}
	if hr.Payout != 15 {
		t.Errorf("expected payout 15 at 3:2, got %.2f", hr.Payout)
	}
	if engine.Player.Bankroll != 1015 {
		t.Errorf("expected bankroll 1015, got %.2f", engine.Player.Bankroll)
	}

	// The hole card is exposed by the resolution reveal.
	last := (*exposed)[len(*exposed)-1]
	if last != card(deck.Five, deck.Hearts) {
		t.Errorf("expected hole card exposed last, got %s", last)
	}
}

func TestEarlyDealerBlackjack(t *testing.T) {
	engine, _ := riggedEngine(H17, []deck.Card{
		card(deck.Ten, deck.Clubs),
		card(deck.Ace, deck.Spades), // upcard: peek condition
		card(deck.Nine, deck.Diamonds),
		card(deck.King, deck.Hearts), // hole: dealer natural
	})
	engine.StartRound(10)

	summary := engine.CheckEarlyBlackjack()
	if summary == nil {
		t.Fatal("expected early resolution")
	}
	hr := summary.HandResults[0]
	if hr.Outcome != OutcomeLose || hr.Payout != -10 {
		t.Errorf("expected LOSE -10, got %s %+.2f", hr.Outcome, hr.Payout)
	}
	if engine.Player.Bankroll != 990 {
		t.Errorf("expected bankroll 990, got %.2f", engine.Player.Bankroll)
	}
}

func TestEarlyDoubleBlackjackPush(t *testing.T) {
	engine, _ := riggedEngine(H17, []deck.Card{
		card(deck.Ace, deck.Spades),
		card(deck.Ten, deck.Clubs),
		card(deck.Queen, deck.Diamonds),
		card(deck.Ace, deck.Hearts), // dealer natural too
	})
	engine.StartRound(10)

	summary := engine.CheckEarlyBlackjack()
	if summary == nil {
		t.Fatal("expected early resolution")
	}
	hr := summary.HandResults[0]
	if hr.Outcome != OutcomePush || hr.Payout != 0 {
		t.Errorf("expected PUSH 0, got %s %+.2f", hr.Outcome, hr.Payout)
	}
	if engine.Player.Bankroll != 1000 {
		t.Errorf("push must refund the stake, got %.2f", engine.Player.Bankroll)
	}
}

func TestNoPeekWithoutCondition(t *testing.T) {
	// Dealer shows a 6: no peek, even though the hole card is an ace.
	engine, _ := riggedEngine(H17, []deck.Card{
		card(deck.Ten, deck.Clubs),
		card(deck.Six, deck.Spades),
		card(deck.Nine, deck.Diamonds),
		card(deck.Ace, deck.Hearts),
	})
	engine.StartRound(10)

	if summary := engine.CheckEarlyBlackjack(); summary != nil {
		t.Error("no peek condition: round must continue")
	}
	if engine.Dealer.HoleCardRevealed {
		t.Error("hole card must stay hidden without a peek condition")
	}
}

// Scenario: split eights, double the first split hand after drawing a 3.
// Three bets leave the bankroll before resolution.
func TestSplitThenDouble(t *testing.T) {
	engine, _ := riggedEngine(H17, []deck.Card{
		card(deck.Eight, deck.Clubs),  // player
		card(deck.Six, deck.Spades),   // upcard
		card(deck.Eight, deck.Diamonds), // player
		card(deck.Ten, deck.Hearts),   // hole
		card(deck.Three, deck.Clubs),  // split hand 1 draw -> 11
		card(deck.Five, deck.Diamonds), // split hand 2 draw -> 13
		card(deck.Ten, deck.Spades),   // double draw -> 21
		card(deck.Nine, deck.Clubs),   // dealer hit 16 -> 25 bust
	})
	engine.StartRound(10)

	if summary := engine.CheckEarlyBlackjack(); summary != nil {
		t.Fatal("no early resolution expected")
	}

	dealt, err := engine.ExecuteAction(ActionSplit, 0)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(dealt) != 2 {
		t.Fatalf("split deals one card to each hand, got %d", len(dealt))
	}

	if _, err := engine.ExecuteAction(ActionDouble, 0); err != nil {
		t.Fatalf("double failed: %v", err)
	}
	if engine.Player.Bankroll != 970 {
		t.Fatalf("expected three bets debited (bankroll 970), got %.2f", engine.Player.Bankroll)
	}

	if _, err := engine.ExecuteAction(ActionStand, 1); err != nil {
		t.Fatalf("stand failed: %v", err)
	}
	if err := engine.PlayDealer(); err != nil {
		t.Fatalf("dealer play failed: %v", err)
	}

	summary := engine.ResolveRound()
	// Doubled 21 wins 20, 13 wins 10 against a busted dealer.
	if summary.TotalPayout != 30 {
		t.Errorf("expected net +30, got %+.2f", summary.TotalPayout)
	}
	if engine.Player.Bankroll != 1030 {
		t.Errorf("expected bankroll 1030, got %.2f", engine.Player.Bankroll)
	}
}

func TestSplitTwentyOneIsNotBlackjack(t *testing.T) {
	engine, _ := riggedEngine(H17, []deck.Card{
		card(deck.Ace, deck.Spades),
		card(deck.Six, deck.Clubs),
		card(deck.Ace, deck.Diamonds),
		card(deck.Ten, deck.Hearts),  // hole
		card(deck.King, deck.Hearts), // split hand 1 -> 21
		card(deck.Nine, deck.Spades), // split hand 2 -> 20
		card(deck.Ace, deck.Clubs),   // dealer hit 16 -> 17
	})
	engine.StartRound(10)
	engine.ExecuteAction(ActionSplit, 0)

	if engine.Player.Hands[0].IsBlackjack() {
		t.Error("split ace + king is 21, not a natural")
	}

	engine.ExecuteAction(ActionStand, 0)
	engine.ExecuteAction(ActionStand, 1)
	engine.PlayDealer()
	summary := engine.ResolveRound()

	// 21 beats 17 for an even-money win, not a 3:2 natural.
	if hr := summary.HandResults[0]; hr.Outcome != OutcomeWin || hr.Payout != 10 {
		t.Errorf("expected WIN +10 on split 21, got %s %+.2f", hr.Outcome, hr.Payout)
	}
}

func TestSurrenderResolution(t *testing.T) {
	engine, _ := riggedEngine(H17, []deck.Card{
		card(deck.Ten, deck.Clubs),
		card(deck.Ten, deck.Spades),
		card(deck.Six, deck.Diamonds),
		card(deck.Seven, deck.Hearts),
	})
	engine.StartRound(10)
	if summary := engine.CheckEarlyBlackjack(); summary != nil {
		t.Fatal("dealer 10/7 is no natural")
	}

	if _, err := engine.ExecuteAction(ActionSurrender, 0); err != nil {
		t.Fatalf("surrender failed: %v", err)
	}
	if engine.Player.Bankroll != 995 {
		t.Fatalf("expected half-bet refund (995), got %.2f", engine.Player.Bankroll)
	}

	engine.PlayDealer()
	summary := engine.ResolveRound()
	hr := summary.HandResults[0]
	if hr.Outcome != OutcomeSurrender || hr.Payout != -5 {
		t.Errorf("expected SURRENDER -5, got %s %+.2f", hr.Outcome, hr.Payout)
	}
	// The -5 is informational; no second debit happens at resolution.
	if engine.Player.Bankroll != 995 {
		t.Errorf("surrender must not be debited twice, got %.2f", engine.Player.Bankroll)
	}
}

func TestBustedHandNeverPushesWithBustedDealer(t *testing.T) {
	engine, _ := riggedEngine(H17, []deck.Card{
		card(deck.Ten, deck.Clubs),
		card(deck.Six, deck.Spades),
		card(deck.Nine, deck.Diamonds),
		card(deck.Ten, deck.Hearts),  // hole -> dealer 16
		card(deck.Five, deck.Clubs),  // player hit -> 24 bust
		card(deck.King, deck.Spades), // dealer hit -> 26 bust
	})
	engine.StartRound(10)
	engine.ExecuteAction(ActionHit, 0)

	if engine.Player.Hands[0].Status != StatusBusted {
		t.Fatal("player should have busted")
	}

	engine.PlayDealer()
	summary := engine.ResolveRound()
	hr := summary.HandResults[0]
	if hr.Outcome != OutcomeLose || hr.Payout != -10 {
		t.Errorf("busted hand loses even against a busted dealer, got %s %+.2f", hr.Outcome, hr.Payout)
	}
}

func TestPushCreditsOriginalBet(t *testing.T) {
	engine, _ := riggedEngine(H17, []deck.Card{
		card(deck.Ten, deck.Clubs),
		card(deck.Ten, deck.Spades),
		card(deck.Nine, deck.Diamonds),
		card(deck.Nine, deck.Hearts), // dealer 19
	})
	engine.StartRound(10)
	if s := engine.CheckEarlyBlackjack(); s != nil {
		t.Fatal("no naturals here")
	}
	engine.ExecuteAction(ActionStand, 0)
	engine.PlayDealer()
	summary := engine.ResolveRound()

	if hr := summary.HandResults[0]; hr.Outcome != OutcomePush {
		t.Fatalf("expected push, got %s", hr.Outcome)
	}
	if engine.Player.Bankroll != 1000 {
		t.Errorf("push returns exactly the stake, got %.2f", engine.Player.Bankroll)
	}
}

func TestGetAvailableActions(t *testing.T) {
	engine, _ := riggedEngine(H17, []deck.Card{
		card(deck.Eight, deck.Clubs),
		card(deck.Six, deck.Spades),
		card(deck.Eight, deck.Diamonds),
		card(deck.Ten, deck.Hearts),
	})
	engine.StartRound(10)

	actions := engine.GetAvailableActions(0)
	want := []Action{ActionHit, ActionStand, ActionDouble, ActionSplit, ActionSurrender}
	if len(actions) != len(want) {
		t.Fatalf("expected %d actions, got %v", len(want), actions)
	}
	for i, a := range want {
		if actions[i] != a {
			t.Errorf("action %d: expected %s, got %s", i, a, actions[i])
		}
	}

	// Idempotent: repeated queries return the identical set.
	again := engine.GetAvailableActions(0)
	for i := range actions {
		if actions[i] != again[i] {
			t.Fatal("repeated query returned a different action set")
		}
	}

	if got := engine.GetAvailableActions(5); got != nil {
		t.Errorf("out-of-range hand index should return no actions, got %v", got)
	}
}

func TestActionsConstrainedByBankroll(t *testing.T) {
	// Bankroll exactly covers the bet: no double or split offered.
	shoe := NewShoeFromCards(DefaultPenetration, randutil.New(1), []deck.Card{
		card(deck.Eight, deck.Clubs),
		card(deck.Six, deck.Spades),
		card(deck.Eight, deck.Diamonds),
		card(deck.Ten, deck.Hearts),
	})
	player := NewPlayer(10, DefaultMaxSplits)
	engine := NewEngine(shoe, player, NewDealer(H17), DefaultBlackjackPayout, nil)
	engine.StartRound(10)

	for _, a := range engine.GetAvailableActions(0) {
		if a == ActionDouble || a == ActionSplit {
			t.Errorf("%s should not be offered with an empty bankroll", a)
		}
	}

	if _, err := engine.ExecuteAction(ActionDouble, 0); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestIllegalActionRejectedWithoutMutation(t *testing.T) {
	engine, exposed := riggedEngine(H17, []deck.Card{
		card(deck.Ten, deck.Clubs),
		card(deck.Six, deck.Spades),
		card(deck.Nine, deck.Diamonds),
		card(deck.Nine, deck.Hearts),
	})
	engine.StartRound(10)
	engine.ExecuteAction(ActionStand, 0)

	before := len(*exposed)
	if _, err := engine.ExecuteAction(ActionHit, 0); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("expected ErrIllegalAction after stand, got %v", err)
	}
	if len(*exposed) != before {
		t.Error("rejected action must not deal cards")
	}
	if engine.Player.Bankroll != 990 {
		t.Error("rejected action must not move money")
	}
}

func TestStartRoundShufflesAndBurns(t *testing.T) {
	var exposed []deck.Card
	shoe := NewShoe(DefaultPenetration, randutil.New(9))
	// Exhaust past penetration so the next round forces a shuffle.
	for i := 0; i < 40; i++ {
		shoe.Deal()
	}
	player := NewPlayer(1000, DefaultMaxSplits)
	engine := NewEngine(shoe, player, NewDealer(H17), DefaultBlackjackPayout, func(c deck.Card) {
		exposed = append(exposed, c)
	})

	if !engine.NeedsShuffle() {
		t.Fatal("shoe should need a shuffle")
	}
	if _, _, err := engine.StartRound(10); err != nil {
		t.Fatalf("start round failed: %v", err)
	}

	// One burn card plus three face-up deals.
	if len(exposed) != 4 {
		t.Errorf("expected burn + 3 exposures, got %d", len(exposed))
	}
	// Burn plus four dealt cards off a fresh deck.
	if shoe.CardsDealt() != 5 {
		t.Errorf("expected 5 cards off the fresh deck, got %d", shoe.CardsDealt())
	}
}
