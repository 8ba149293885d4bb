package feed

import "testing"

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Bangkok updates policy", "Bangkok updates policy"},
		{"entities", "Baht &amp; trade &quot;deal&quot;", `Baht & trade "deal"`},
		{"tags", "<p>New <b>cabinet</b> announced</p>", "New cabinet announced"},
		{"escaped tags", "&lt;p&gt;text inside&lt;/p&gt;", "text inside"},
		{"whitespace runs", "  too \n\t many   spaces ", "too many spaces"},
		{"mixed", "<div>A&nbsp;headline<br/>with  breaks</div>", "A headline with breaks"},
		{"script dropped", "<div>hi<script>var a = 1;</script> there</div>", "hi there"},
	}
	for _, tc := range cases {
		if got := CleanText(tc.in); got != tc.want {
			t.Errorf("%s: CleanText(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint("https://example.com/news/1")
	if len(fp) != 16 {
		t.Fatalf("fingerprint length = %d, want 16", len(fp))
	}
	if fp != Fingerprint("https://example.com/news/1") {
		t.Error("fingerprint not deterministic")
	}
	if fp == Fingerprint("https://example.com/news/2") {
		t.Error("different links share a fingerprint")
	}
	for _, r := range fp {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			t.Fatalf("fingerprint %q is not lowercase hex", fp)
		}
	}
}
