package ui

import "strings"

// Tone is the semantic colour of a badge, callout or trend.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

var toneBadgeClasses = map[Tone]string{
	ToneNeutral: "bg-slate-100 text-slate-700",
	ToneInfo:    "bg-sky-100 text-sky-700",
	ToneSuccess: "bg-emerald-100 text-emerald-700",
	ToneWarning: "bg-amber-100 text-amber-700",
	ToneDanger:  "bg-rose-100 text-rose-700",
}

var toneCalloutClasses = map[Tone]string{
	ToneNeutral: "border-slate-200 bg-slate-50 text-slate-700",
	ToneInfo:    "border-sky-200 bg-sky-50 text-sky-800",
	ToneSuccess: "border-emerald-200 bg-emerald-50 text-emerald-800",
	ToneWarning: "border-amber-200 bg-amber-50 text-amber-800",
	ToneDanger:  "border-rose-200 bg-rose-50 text-rose-800",
}

// ParseTone maps free-form data to a Tone. Unknown values become ToneNeutral.
func ParseTone(s string) Tone {
	t := Tone(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := toneBadgeClasses[t]; ok {
		return t
	}
	return ToneNeutral
}

// BadgeClass returns the utility classes for a badge of the given tone.
func BadgeClass(t Tone) string {
	tone, ok := toneBadgeClasses[t]
	if !ok {
		tone = toneBadgeClasses[ToneNeutral]
	}
	return "inline-flex items-center rounded-full px-2 py-1 text-xs font-medium " + tone
}

// CalloutClass returns the utility classes for an alert box.
func CalloutClass(t Tone) string {
	tone, ok := toneCalloutClasses[t]
	if !ok {
		tone = toneCalloutClasses[ToneNeutral]
	}
	return "rounded-md border px-4 py-3 text-sm " + tone
}

// ButtonVariant selects one of the button styles.
type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
	ButtonGhost     ButtonVariant = "ghost"
)

var buttonClasses = map[ButtonVariant]string{
	ButtonPrimary:   "bg-slate-900 text-white shadow-sm hover:bg-slate-700",
	ButtonSecondary: "border border-slate-300 bg-white text-slate-900 shadow-sm hover:bg-slate-50",
	ButtonGhost:     "text-slate-700 hover:bg-slate-100",
}

// ParseButtonVariant falls back to ButtonSecondary for unknown input.
func ParseButtonVariant(s string) ButtonVariant {
	v := ButtonVariant(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := buttonClasses[v]; ok {
		return v
	}
	return ButtonSecondary
}

// ButtonClass returns the utility classes for a button variant.
func ButtonClass(v ButtonVariant) string {
	variant, ok := buttonClasses[v]
	if !ok {
		variant = buttonClasses[ButtonSecondary]
	}
	return "inline-flex items-center justify-center gap-2 rounded-md px-4 py-2 text-sm font-semibold " + variant
}

// StepStatus is the progress state of one checkout step.
type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepCurrent   StepStatus = "current"
	StepUpcoming  StepStatus = "upcoming"
)

type stepStyle struct {
	marker string
	label  string
	aria   string
}

var stepStyles = map[StepStatus]stepStyle{
	StepCompleted: {
		marker: "flex h-8 w-8 items-center justify-center rounded-full bg-emerald-600 text-white",
		label:  "text-sm font-medium text-slate-900",
	},
	StepCurrent: {
		marker: "flex h-8 w-8 items-center justify-center rounded-full border-2 border-slate-900 bg-white text-slate-900",
		label:  "text-sm font-semibold text-slate-900",
		aria:   "step",
	},
	StepUpcoming: {
		marker: "flex h-8 w-8 items-center justify-center rounded-full border border-slate-300 bg-white text-slate-400",
		label:  "text-sm font-medium text-slate-500",
	},
}

// ParseStepStatus falls back to StepUpcoming for unknown input.
func ParseStepStatus(s string) StepStatus {
	st := StepStatus(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := stepStyles[st]; ok {
		return st
	}
	return StepUpcoming
}

// Trend is the direction of a dashboard metric.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

type trendStyle struct {
	arrow string
	tone  Tone
}

var trendStyles = map[Trend]trendStyle{
	TrendUp:   {arrow: "↑", tone: ToneSuccess},
	TrendDown: {arrow: "↓", tone: ToneDanger},
	TrendFlat: {arrow: "→", tone: ToneNeutral},
}

// ParseTrend falls back to TrendFlat for unknown input.
func ParseTrend(s string) Trend {
	tr := Trend(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := trendStyles[tr]; ok {
		return tr
	}
	return TrendFlat
}
