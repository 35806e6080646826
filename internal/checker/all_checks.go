package checker

// AllChecks returns the default rule list in the order the engine tries it.
// Cheap structural rules come first so that most steps are explained by the
// most specific law.
func AllChecks() []Check {
	return []Check{
		{Name: "exact-match", Run: exactMatch},
		{Name: "number-match", Run: numberMatch},

		// equations
		{Name: "check-add-sub", Symmetric: true, Run: checkAddSub},
		{Name: "check-mul", Symmetric: true, Run: checkMul},
		{Name: "check-div", Symmetric: true, Run: checkDiv},

		// axioms
		{Name: "commute-addition", Run: commuteAddition},
		{Name: "commute-multiplication", Run: commuteMultiplication},
		{Name: "associative-addition", Symmetric: true, Run: associativeAddition},
		{Name: "associative-multiplication", Symmetric: true, Run: associativeMultiplication},
		{Name: "add-zero", Symmetric: true, Run: addZero},
		{Name: "mul-one", Symmetric: true, Run: mulOne},
		{Name: "mul-zero", Run: mulZero},
		{Name: "check-args", Run: checkArgs},
		{Name: "eq-swap", Run: eqSwap},

		// integers
		{Name: "add-inverse", Symmetric: true, Run: addInverse},
		{Name: "sub-is-neg", Symmetric: true, Run: subIsNeg},
		{Name: "double-negative", Symmetric: true, Run: doubleNegative},
		{Name: "move-neg-inside-mul", Symmetric: true, Run: moveNegInsideMul},
		{Name: "move-neg-to-first-factor", Symmetric: true, Run: moveNegToFirstFactor},
		{Name: "neg-is-mul-neg-one", Symmetric: true, Run: negIsMulNegOne},

		// evaluation
		{Name: "eval-add", Symmetric: true, Run: evalAdd},
		{Name: "eval-mul", Symmetric: true, Run: evalMul},
		{Name: "eval-div", Run: evalDiv},

		// fractions by one are dropped before any power law can match them
		{Name: "div-by-one", Symmetric: true, Run: divByOne},

		// powers
		{Name: "pow-to-zero", Run: powToZero},
		{Name: "pow-to-one", Symmetric: true, Run: powToOne},
		{Name: "pow-of-one", Run: powOfOne},
		{Name: "pow-of-zero", Run: powOfZero},
		{Name: "mul-pows-same-base", Symmetric: true, Run: mulPowsSameBase},
		{Name: "div-pows-same-base", Symmetric: true, Run: divPowsSameBase},
		{Name: "pow-neg-exp", Run: powNegExp},
		{Name: "one-over-pow-to-neg-pow", Run: oneOverPowToNegPow},
		{Name: "pow-of-pow", Symmetric: true, Run: powOfPow},
		{Name: "pow-of-mul", Run: powOfMul},
		{Name: "mul-pows-same-exp", Run: mulPowsSameExp},
		{Name: "pow-of-div", Run: powOfDiv},
		{Name: "div-of-pows-same-exp", Run: divOfPowsSameExp},
		{Name: "pow-def", Symmetric: true, Run: powDef},
		{Name: "pow-def-reverse", Run: powDefReverse},

		// fractions
		{Name: "mul-inverse", Symmetric: true, Run: mulInverse},
		{Name: "div-by-frac", Run: divByFrac},
		{Name: "cancel-frac", Run: cancelFrac},
		{Name: "mul-frac", Run: mulFrac},
		{Name: "div-is-mul-by-one-over", Run: divIsMulByOneOver},

		// polynomials
		{Name: "collect-like-terms", Run: collectLikeTerms},
		{Name: "distribute", Symmetric: true, Run: distribute},
	}
}
