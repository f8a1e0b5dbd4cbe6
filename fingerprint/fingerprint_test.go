package fingerprint

import "testing"

func TestSum(t *testing.T) {
	a := Sum([]byte("class A {}"))
	if a != Sum([]byte("class A {}")) {
		t.Errorf("Sum is not deterministic")
	}
	if a == Sum([]byte("class B {}")) {
		t.Errorf("Sum(%q) collides with Sum(%q)", "class A {}", "class B {}")
	}
}
