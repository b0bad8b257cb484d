package symbols

import "testing"

func TestResolveUppercaseToken(t *testing.T) {
	if got := Resolve("What is TCS stock price"); got != "TCS" {
		t.Fatalf("expected TCS, got %q", got)
	}
}

func TestResolveSkipsStopWords(t *testing.T) {
	if got := Resolve("SHOW THE PRICE FOR INFY"); got != "INFY" {
		t.Fatalf("expected INFY, got %q", got)
	}
}

func TestResolveAlias(t *testing.T) {
	cases := map[string]string{
		"tell me about reliance":           "RELIANCE",
		"how is tata consultancy doing":    "TCS",
		"is apple a good buy":              "AAPL",
		"what about hdfc bank":             "HDFCBANK",
	}
	for input, want := range cases {
		if got := Resolve(input); got != want {
			t.Fatalf("Resolve(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestResolveNoMatch(t *testing.T) {
	if got := Resolve("asdkjasd"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestResolveCapture(t *testing.T) {
	if got := ResolveCapture("WIPRO STOCK", "anything"); got != "WIPRO" {
		t.Fatalf("expected WIPRO, got %q", got)
	}
	// Capture that is all noise falls back to the full text scan.
	if got := ResolveCapture("STOCK PRICE", "tell me about infosys"); got != "INFY" {
		t.Fatalf("expected INFY, got %q", got)
	}
	// Too-long or non-letter captures are rejected.
	if got := ResolveCapture("123", "asdkjasd"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
