// Package health maps a component's remaining capability to a performance tier.
//
// A percentage is always the truncated integer value of current*100/max. Tiers:
// LOW below 50, AVERAGE from 50 up to (not including) 75, HIGH from 75 upwards.
// Each tier carries the display color used in the rendered report.
package health
