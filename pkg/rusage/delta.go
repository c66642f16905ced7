package rusage

// Delta returns the per-field absolute difference between start and end.
//
// Durations differ by |end - start| and counts by max - min. A field that is
// unsupported in both operands yields zero, so a delta of two snapshots from
// the same platform renders unsupported fields as zero unless the formatter
// consults the registry. A field unsupported in only one operand stays at
// the sentinel rather than taking max - min against it, since the sentinel
// is the type's maximum and would otherwise read as a huge measured value.
func Delta(start, end Snapshot) Snapshot {
	var out Snapshot
	for i := 0; i < NumFields; i++ {
		slot := Slot(i)
		if slot.IsDuration() {
			out.SetDuration(slot, deltaDuration(start.Duration(slot), end.Duration(slot)))
			continue
		}
		out.SetCount(slot, deltaCount(start.Count(slot), end.Count(slot)))
	}
	return out
}

func deltaDuration(a, b Duration) Duration {
	switch {
	case a.IsUnsupported() && b.IsUnsupported():
		return Duration{}
	case a.IsUnsupported() || b.IsUnsupported():
		return DurationUnsupported
	}
	return b.AbsDiff(a)
}

func deltaCount(a, b Count) Count {
	switch {
	case a.IsUnsupported() && b.IsUnsupported():
		return 0
	case a.IsUnsupported() || b.IsUnsupported():
		return CountUnsupported
	}
	return b.AbsDiff(a)
}

// DeltaNow collects the calling process's usage and returns its delta from
// start.
func DeltaNow(start Snapshot) (Snapshot, error) {
	end, err := CollectSelf()
	if err != nil {
		return Snapshot{}, err
	}
	return Delta(start, end), nil
}
