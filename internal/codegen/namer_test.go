package codegen_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tacgen/internal/codegen"
)

var _ = Describe("Namer", func() {
	It("should hand out the alphabet in order and then fail", func() {
		namer, err := codegen.NewNamer("abc", false)
		Expect(err).NotTo(HaveOccurred())
		Expect(namer.Capacity()).To(Equal(3))

		for _, want := range []string{"a", "b", "c"} {
			name, err := namer.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal(want))
		}
		Expect(namer.Allocated()).To(Equal(3))

		_, err = namer.Next()
		var capErr *codegen.CapacityError
		Expect(errors.As(err, &capErr)).To(BeTrue())
		Expect(capErr.Error()).To(ContainSubstring("more than 3"))
		Expect(namer.Allocated()).To(Equal(3))
	})

	DescribeTable("extended names",
		func(i int, want string) {
			namer, err := codegen.NewNamer(codegen.DefaultAlphabet, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(namer.NameAt(i)).To(Equal(want))
		},
		Entry("first", 0, "a"),
		Entry("last single", 25, "z"),
		Entry("first double", 26, "aa"),
		Entry("end of a-row", 51, "az"),
		Entry("start of b-row", 52, "ba"),
		Entry("last double", 701, "zz"),
		Entry("first triple", 702, "aaa"),
	)

	It("should never repeat an extended name", func() {
		namer, err := codegen.NewNamer("xy", true)
		Expect(err).NotTo(HaveOccurred())
		Expect(namer.Capacity()).To(Equal(-1))

		seen := map[string]bool{}
		var names []string
		for i := 0; i < 500; i++ {
			name, err := namer.Next()
			Expect(err).NotTo(HaveOccurred())
			Expect(seen).NotTo(HaveKey(name))
			seen[name] = true
			names = append(names, name)
		}
		Expect(names[:8]).To(Equal([]string{"x", "y", "xx", "xy", "yx", "yy", "xxx", "xxy"}))
	})

	DescribeTable("rejected alphabets",
		func(alphabet string, msg string) {
			_, err := codegen.NewNamer(alphabet, false)
			Expect(err).To(MatchError(ContainSubstring(msg)))
		},
		Entry("empty", "", "empty"),
		Entry("digit", "ab1", "reserved"),
		Entry("space", "a b", "reserved"),
		Entry("operator", "a+", "reserved"),
		Entry("assignment", "a=", "reserved"),
		Entry("repeat", "aba", "repeats"),
		Entry("invalid utf-8", "a\xffb", "not valid UTF-8"),
	)

	It("should accept U+FFFD as an ordinary symbol", func() {
		namer, err := codegen.NewNamer("a\uFFFD", false)
		Expect(err).NotTo(HaveOccurred())
		_, _ = namer.Next()
		name, err := namer.Next()
		Expect(err).NotTo(HaveOccurred())
		Expect(name).To(Equal("\uFFFD"))
	})
})

var _ = Describe("IR", func() {
	It("should render instructions and operands", func() {
		instr := codegen.IRInstr{Op: codegen.IRMul, Dst: "b", LHS: codegen.Var("a"), RHS: codegen.Imm(42)}
		Expect(instr.String()).To(Equal("b = a * 42"))
		Expect(codegen.None().String()).To(Equal("<none>"))
		Expect(codegen.IROp(9).String()).To(Equal("irop_9"))
	})

	It("should render the result as the last line", func() {
		prog := &codegen.Program{}
		prog.Emit(codegen.IRInstr{Op: codegen.IRAdd, Dst: "a", LHS: codegen.Imm(1), RHS: codegen.Imm(2)})
		prog.Result = "a"
		Expect(prog.Lines()).To(Equal([]string{"a = 1 + 2", "a"}))
	})

	It("should dump the program as a table when asked", func() {
		opts := codegen.DefaultOptions()
		opts.DumpIR = true
		res, err := codegen.Generate(lexerStream("6 * 7 + 1"), opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IRDump).To(HavePrefix("=== Program (2 instructions, result b) ===\n"))
		Expect(res.IRDump).To(MatchRegexp(`\|\s*#\s*\|\s*Dst\s*\|\s*LHS\s*\|\s*Op\s*\|\s*RHS\s*\|`))
		Expect(res.IRDump).To(MatchRegexp(`\|\s*0\s*\|\s*a\s*\|\s*6\s*\|\s*\*\s*\|\s*7\s*\|`))
		Expect(res.IRDump).To(MatchRegexp(`\|\s*1\s*\|\s*b\s*\|\s*a\s*\|\s*\+\s*\|\s*1\s*\|`))
		Expect(res.IRDump).To(MatchRegexp(`\|\s*result\s*\|\s*b\s*\|`))
		Expect(res.IRDump).NotTo(ContainSubstring("RESULT"))
		Expect(res.IRDump).To(HaveSuffix("\n"))
	})

	It("should leave the dump empty by default", func() {
		res, err := codegen.Generate(lexerStream("1 + 2"), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.IRDump).To(BeEmpty())
		Expect(res.Program.Result).To(Equal("a"))
	})
})
