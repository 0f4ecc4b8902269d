package houses

import (
	sph "github.com/chrissnell/skychart/pkg/spherical"
)

// Angles are the four chart angles, ecliptic longitudes in degrees
type Angles struct {
	Ascendant  float64 `json:"ascendant"`
	Midheaven  float64 `json:"midheaven"`
	Descendant float64 `json:"descendant"`
	ImumCoeli  float64 `json:"imum_coeli"`
}

// CalculateAngles derives the angles from local sidereal time, obliquity and
// geographic latitude, all in degrees. Descendant and IC are the antipodes of
// Ascendant and MC.
func CalculateAngles(lst, obliquity, latitude float64) Angles {
	lst = sph.Normalize(lst)

	mc := sph.ARMCToMC(lst, obliquity)
	asc := sph.Normalize(sph.Atan2d(
		sph.Cosd(lst),
		-(sph.Sind(lst)*sph.Cosd(obliquity) + sph.Tand(latitude)*sph.Sind(obliquity)),
	))

	return newAngles(asc, mc)
}

func newAngles(asc, mc float64) Angles {
	return Angles{
		Ascendant:  asc,
		Midheaven:  mc,
		Descendant: sph.Antipode(asc),
		ImumCoeli:  sph.Antipode(mc),
	}
}
