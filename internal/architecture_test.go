package internal

import (
	"testing"

	"github.com/kcmvp/archunit"
)

func TestArchitecture(t *testing.T) {
	domain := archunit.Packages("domain", []string{".../internal/domain/..."})
	ports := archunit.Packages("ports", []string{".../internal/ports"})
	adapters := archunit.Packages("adapters", []string{".../internal/adapters/..."})

	// The domain and the ports it declares only see each other.
	if err := domain.ShouldNotReferLayers(adapters); err != nil {
		t.Errorf("Architecture violation: Domain depends on Adapters: %v", err)
	}
	if err := ports.ShouldNotReferLayers(adapters); err != nil {
		t.Errorf("Architecture violation: Ports depend on Adapters: %v", err)
	}
}

func TestDomainPackages(t *testing.T) {
	for _, name := range []string{"model", "translator", "service"} {
		layer := archunit.Packages(name, []string{".../internal/domain/" + name})
		if len(layer.Packages()) == 0 {
			t.Errorf("No %s package found in domain", name)
		}
	}
}
