// Package lsqr solves large sparse linear least-squares problems
//
//	min ‖Ax − b‖₂
//
// with the LSQR algorithm of Paige & Saunders, from building the sparse
// system to damping, serial or column-partitioned solves and reporting.
//
// 🚀 What is in the box?
//
//	• Sparse matrices: row-by-row CSR construction, extension, products
//	• Vector math: norms, in-place and pure kernels, 3-D points
//	• Model damping: regularization rows, Lp norms via IRLS multipliers
//	• Solver: LSQR with stop reasons, residual history, progress logging
//	• Partitioned solves: columns split across in-process members
//	• Problem files, TOML reports and convergence charts
//
// Under the hood the module is organized as:
//
//	vector/   Point, norms, Normalize, Multiply/Add/Transform
//	reduce/   Reducer: Local and in-process Group (all-reduce, all-gather, barrier)
//	sparse/   CSR Matrix: New/NewRow/Add/Finalize/Extend/Reset, MultVector, TransMultVector
//	damping/  damping rows and the Lp NormMultiplier
//	solver/   LSQR Solver and Result
//	problem/  TOML problem files, Build/Run, reports
//	report/   convergence charts
//	logger/   zap logger construction and field names
//	config/   viper-backed settings of the lsqr command
//	cmd/lsqr  the command-line front end
//
// Quick example:
//
//	    ⎡2 0 0⎤       ⎡ 2⎤
//	A = ⎢0 4 0⎥,  b = ⎢ 8⎥   →   x ≈ [1 2 3]
//	    ⎣0 0 5⎦       ⎣15⎦
//
//	go install github.com/katalvlaran/lsqr/cmd/lsqr@latest
package lsqr
