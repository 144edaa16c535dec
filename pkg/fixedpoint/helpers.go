package fixedpoint

func Sum(values []Value) (s Value) {
	s = Zero
	for _, value := range values {
		s = s.Add(value)
	}
	return s
}

func Avg(values []Value) (avg Value) {
	if len(values) == 0 {
		return Zero
	}
	s := Sum(values)
	avg = s.Div(NewFromInt(int64(len(values))))
	return avg
}
