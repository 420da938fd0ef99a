package records

import "fmt"

// NodeName is the operator of a parse tree node.
type NodeName uint8

const (
	// general list structure
	NodeList NodeName = iota
	NodeItem

	// declarations
	NodeDecl
	NodeTypeDecl
	NodeBasicTC
	NodeEnumeratedTC
	NodeRecordTC
	NodeMonitoredTC
	NodeVariantTC
	NodeRefTC
	NodePointerTC
	NodeListTC
	NodeArrayTC
	NodeArrayDescTC
	NodeSequenceTC
	NodeProcTC
	NodeProcessTC
	NodePortTC
	NodeSignalTC
	NodeErrorTC
	NodeProgramTC
	NodeAnyTC
	NodeDefinitionTC
	NodeUnionTC
	NodeRelativeTC
	NodeSubrangeTC
	NodeLongTC
	NodeOpaqueTC
	NodeZoneTC
	NodeLinkTC
	NodeVarTC
	NodeImplicitTC
	NodeFrameTC
	NodeDiscrimTC
	NodePaintTC
	NodeOptionTC
	NodeSpareTC
	NodeUnit
	NodeDirItem
	NodeModule
	NodeBody
	NodeInline
	NodeLambda
	NodeBlock

	// statements
	NodeAssign
	NodeExtract
	NodeIf
	NodeCase
	NodeCaseTest
	NodeCaseSwitch
	NodeBind
	NodeDo
	NodeForSeq
	NodeUpThru
	NodeDownThru
	NodeReturn
	NodeResult
	NodeGoto
	NodeExit
	NodeLoop
	NodeFree
	NodeResume
	NodeReject
	NodeContinue
	NodeRetry
	NodeCatchMark
	NodeRestart
	NodeStop
	NodeLock
	NodeWait
	NodeNotify
	NodeBroadcast
	NodeUnlock
	NodeNull
	NodeLabel
	NodeOpen
	NodeEnable
	NodeCatch
	NodeDst
	NodeLst
	NodeLstf
	NodeSyscall
	NodeChecked
	NodeProcCheck
	NodeSubst
	NodeCall
	NodePortCall
	NodeSignal
	NodeError
	NodeSysError
	NodeXError
	NodeStart
	NodeJoin

	// expressions
	NodeApply
	NodeCallX
	NodePortCallX
	NodeSignalX
	NodeErrorX
	NodeSysErrorX
	NodeStartX
	NodeForkX
	NodeJoinX
	NodeIndex
	NodeDIndex
	NodeSeqIndex
	NodeReloc
	NodeConstruct
	NodeUnion
	NodeRowCons
	NodeSequence
	NodeListCons
	NodeSubstX
	NodeIfX
	NodeCaseX
	NodeBindX
	NodeAssignX
	NodeExtractX
	NodeOr
	NodeAnd
	NodeRelE
	NodeRelN
	NodeRelL
	NodeRelGE
	NodeRelG
	NodeRelLE
	NodeIn
	NodeNotIn
	NodePlus
	NodeMinus
	NodeTimes
	NodeDiv
	NodeMod
	NodeDot
	NodeCDot
	NodeDollar
	NodeCreate
	NodeNot
	NodeUMinus
	NodeAddr
	NodeUpArrow
	NodeMin
	NodeMax
	NodeLengthen
	NodeAbs
	NodeAll
	NodeSize
	NodeFirst
	NodeLast
	NodePred
	NodeSucc
	NodeArrayDesc
	NodeLength
	NodeBase
	NodeLoophole
	NodeNil
	NodeNew
	NodeVoid
	NodeClit
	NodeLlit
	NodeCast
	NodeCheck
	NodeFloat
	NodePad
	NodeChop
	NodeSafen
	NodeSysErrorV
	NodeNarrow
	NodeIsType
	NodeOpenX
	NodeMwConst
	NodeCons
	NodeAtom
	NodeTypeCode
	NodeStringInit
	NodeTextLit
	NodeSignalInit
	NodeProcInit
	NodeIntOO
	NodeIntOC
	NodeIntCO
	NodeIntCC
	NodeThread
	NodeNone
	NodeExList
	NodeInitList
	NodeDItem
	NodeShorten
	NodeSelf
	NodeGcrt
	NodeOrd
	NodeVal
	NodeMerge

	nodeNameCount
)

var nodeNames = [nodeNameCount]string{
	"list", "item",
	"decl", "typedecl", "basicTC", "enumeratedTC", "recordTC", "monitoredTC",
	"variantTC", "refTC", "pointerTC", "listTC", "arrayTC", "arraydescTC",
	"sequenceTC", "procTC", "processTC", "portTC", "signalTC", "errorTC",
	"programTC", "anyTC", "definitionTC", "unionTC", "relativeTC",
	"subrangeTC", "longTC", "opaqueTC", "zoneTC", "linkTC", "varTC",
	"implicitTC", "frameTC", "discrimTC", "paintTC", "optionTC", "spareTC",
	"unit", "diritem", "module", "body", "inline", "lambda", "block",
	"assign", "extract", "if", "case", "casetest", "caseswitch", "bind",
	"do", "forseq", "upthru", "downthru", "return", "result", "goto",
	"exit", "loop", "free", "resume", "reject", "continue", "retry",
	"catchmark", "restart", "stop", "lock", "wait", "notify", "broadcast",
	"unlock", "null", "label", "open", "enable", "catch", "dst", "lst",
	"lstf", "syscall", "checked", "proccheck", "subst", "call", "portcall",
	"signal", "error", "syserror", "xerror", "start", "join",
	"apply", "callx", "portcallx", "signalx", "errorx", "syserrorx",
	"startx", "forkx", "joinx", "index", "dindex", "seqindex", "reloc",
	"construct", "union", "rowcons", "sequence", "listcons", "substx",
	"ifx", "casex", "bindx", "assignx", "extractx", "or", "and", "relE",
	"relN", "relL", "relGE", "relG", "relLE", "in", "notin", "plus",
	"minus", "times", "div", "mod", "dot", "cdot", "dollar", "create",
	"not", "uminus", "addr", "uparrow", "min", "max", "lengthen", "abs",
	"all", "size", "first", "last", "pred", "succ", "arraydesc", "length",
	"base", "loophole", "nil", "new", "void", "clit", "llit", "cast",
	"check", "float", "pad", "chop", "safen", "syserrorv", "narrow",
	"istype", "openx", "mwconst", "cons", "atom", "typecode", "stringinit",
	"textlit", "signalinit", "procinit", "intOO", "intOC", "intCO", "intCC",
	"thread", "none", "exlist", "initlist", "ditem", "shorten", "self",
	"gcrt", "ord", "val", "merge",
}

// Valid reports whether n is a known operator.
func (n NodeName) Valid() bool { return n < nodeNameCount }

// String returns the node name as written in dumps.
func (n NodeName) String() string {
	if n.Valid() {
		return nodeNames[n]
	}
	return fmt.Sprintf("NodeName(%d)", uint8(n))
}
