package integrator

import (
	"fmt"
	"strings"

	"github.com/df07/go-diffuse-raytracer/pkg/core"
	"github.com/df07/go-diffuse-raytracer/pkg/geometry"
)

// ScatterPolicy selects how a diffuse bounce picks its next direction.
// The policies produce different distributions, so switching changes the image.
type ScatterPolicy int

const (
	// ScatterNaive offsets the normal by a point inside the unit sphere (cos³ weighted)
	ScatterNaive ScatterPolicy = iota
	// ScatterLambertian offsets the normal by a point on the unit sphere (cos weighted)
	ScatterLambertian
	// ScatterHemisphere picks a uniform direction in the normal's hemisphere
	ScatterHemisphere
)

var scatterPolicyNames = map[ScatterPolicy]string{
	ScatterNaive:      "naive",
	ScatterLambertian: "lambertian",
	ScatterHemisphere: "hemisphere",
}

// String returns the policy name used on the command line and in config files
func (p ScatterPolicy) String() string {
	if name, ok := scatterPolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("ScatterPolicy(%d)", int(p))
}

// ParseScatterPolicy converts a policy name to a ScatterPolicy
func ParseScatterPolicy(name string) (ScatterPolicy, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for policy, policyName := range scatterPolicyNames {
		if policyName == normalized {
			return policy, nil
		}
	}
	return 0, fmt.Errorf("integrator: unknown scatter policy %q (want naive, lambertian or hemisphere)", name)
}

// Valid reports whether p is one of the defined policies
func (p ScatterPolicy) Valid() bool {
	_, ok := scatterPolicyNames[p]
	return ok
}

// MarshalText implements encoding.TextMarshaler
func (p ScatterPolicy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("integrator: invalid scatter policy %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *ScatterPolicy) UnmarshalText(text []byte) error {
	policy, err := ParseScatterPolicy(string(text))
	if err != nil {
		return err
	}
	*p = policy
	return nil
}

// Target returns the point the scattered ray is aimed at. It panics on an
// undefined policy.
func (p ScatterPolicy) Target(hit *geometry.HitRecord, sampler core.Sampler) core.Vec3 {
	switch p {
	case ScatterNaive:
		return hit.Point.Add(hit.Normal).Add(core.RandomInUnitSphere(sampler))
	case ScatterLambertian:
		return hit.Point.Add(hit.Normal).Add(core.RandomUnitVector(sampler))
	case ScatterHemisphere:
		inUnitSphere := core.RandomInUnitSphere(sampler)
		if inUnitSphere.Dot(hit.Normal) <= 0 {
			inUnitSphere = inUnitSphere.Negate()
		}
		return hit.Point.Add(inUnitSphere)
	}
	panic(fmt.Sprintf("integrator: invalid scatter policy %d", int(p)))
}
