package serhex

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register hex tags with sentinel
	sentinel.Tag("hex")
	sentinel.Tag("hex.size")
}

// Processor canonicalizes hex-carrying fields at serialization boundaries.
// Use Receive for ingress and Send for egress.
//
// Fields are annotated with a policy name and a byte size:
//
//	type Receipt struct {
//	    TxID  string `json:"tx_id" hex:"strictpfx" hex.size:"32"`
//	    Nonce string `json:"nonce" hex:"compactpfx" hex.size:"8"`
//	}
//
// On ingress the annotated text is decoded against the declared size (mixed
// case and an optional "0x" prefix are accepted) and re-encoded into the
// policy's canonical form; malformed text surfaces as a CharError or
// SizeError. On egress the same canonicalization runs on a clone before
// marshaling, so the wire always carries canonical text and the original
// value is never mutated.
//
// Processors are safe for concurrent use. All validation happens at
// construction: an unknown policy name, a missing or non-positive size tag,
// or an unsupported field shape fails NewProcessor.
type Processor[T Cloner[T]] struct {
	codec Codec

	// Field plans (immutable after construction)
	plans []hexFieldPlan

	// Type metadata
	typeName string
}

// hexFieldPlan describes how to canonicalize a single field.
type hexFieldPlan struct {
	index      []int  // reflect.Value.FieldByIndex access path
	name       string // field name for error messages
	policy     Policy // representation declared by the hex tag
	size       int    // container width in bytes from the hex.size tag
	isBytes    bool   // true if field is []byte holding ASCII hex
	ptrIndices []int  // indices where pointer dereference is needed
	isSlice    bool   // true if field is []string
	isMap      bool   // true if field is map[K]string
}

// typeFieldPlans is the cached plan set for one struct type.
type typeFieldPlans struct {
	typeName string
	fields   []hexFieldPlan
}

var (
	planCache   = make(map[reflect.Type]*typeFieldPlans)
	planCacheMu sync.RWMutex
)

// getOrBuildPlans returns cached field plans for T, building them on first
// use.
func getOrBuildPlans[T Cloner[T]]() (*typeFieldPlans, error) {
	typ := reflect.TypeFor[T]()

	planCacheMu.RLock()
	if cached, ok := planCache[typ]; ok {
		planCacheMu.RUnlock()
		return cached, nil
	}
	planCacheMu.RUnlock()

	planCacheMu.Lock()
	defer planCacheMu.Unlock()

	if cached, ok := planCache[typ]; ok {
		return cached, nil
	}

	plans, err := buildFieldPlans[T]()
	if err != nil {
		return nil, err
	}

	planCache[typ] = plans
	return plans, nil
}

// NewProcessor creates a new Processor for type T.
//
// Struct tags are scanned once and validated eagerly; the returned processor
// performs no further configuration.
func NewProcessor[T Cloner[T]](codec Codec) (*Processor[T], error) {
	plans, err := getOrBuildPlans[T]()
	if err != nil {
		return nil, err
	}

	p := &Processor[T]{
		codec:    codec,
		plans:    plans.fields,
		typeName: plans.typeName,
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), plans.typeName)
	return p, nil
}

// buildFieldPlans creates field plans for type T by scanning struct tags.
func buildFieldPlans[T Cloner[T]]() (*typeFieldPlans, error) {
	spec := sentinel.Scan[T]()
	plans := &typeFieldPlans{
		typeName: spec.TypeName,
	}

	if err := buildFieldPlansRecursive(plans, spec, nil, nil, ""); err != nil {
		return nil, err
	}

	return plans, nil
}

// buildFieldPlansRecursive recursively processes fields and nested structs.
func buildFieldPlansRecursive(plans *typeFieldPlans, spec sentinel.Metadata, parentIndex, ptrIndices []int, namePrefix string) error {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		// Handle nested structs
		if field.Kind == sentinel.KindStruct {
			nestedSpec := scanNestedType(field.ReflectType)
			if nestedSpec != nil {
				if err := buildFieldPlansRecursive(plans, *nestedSpec, fullIndex, ptrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		// Handle pointer to struct
		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			nestedSpec := scanNestedType(field.ReflectType.Elem())
			if nestedSpec != nil {
				newPtrIndices := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
				if err := buildFieldPlansRecursive(plans, *nestedSpec, fullIndex, newPtrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		val, ok := field.Tags["hex"]
		if !ok {
			continue
		}

		policy, ok := ParsePolicy(PolicyName(val))
		if !ok {
			return fmt.Errorf("invalid hex policy %q for field %s", val, fullName)
		}

		sizeVal, ok := field.Tags["hex.size"]
		if !ok {
			return fmt.Errorf("missing hex.size tag for field %s", fullName)
		}
		size, err := strconv.Atoi(sizeVal)
		if err != nil || size < 1 {
			return fmt.Errorf("invalid hex.size %q for field %s", sizeVal, fullName)
		}

		// Check underlying kind for string, []byte, []string, or map[K]string fields
		isString := field.ReflectType.Kind() == reflect.String
		isBytes := field.ReflectType.Kind() == reflect.Slice &&
			field.ReflectType.Elem().Kind() == reflect.Uint8
		isStringSlice := field.ReflectType.Kind() == reflect.Slice &&
			field.ReflectType.Elem().Kind() == reflect.String
		isStringMap := field.ReflectType.Kind() == reflect.Map &&
			field.ReflectType.Elem().Kind() == reflect.String

		if !isString && !isBytes && !isStringSlice && !isStringMap {
			return fmt.Errorf("field %s has hex tag but unsupported type %s", fullName, field.Type)
		}

		plans.fields = append(plans.fields, hexFieldPlan{
			index:      fullIndex,
			name:       fullName,
			policy:     policy,
			size:       size,
			isBytes:    isBytes,
			ptrIndices: ptrIndices,
			isSlice:    isStringSlice,
			isMap:      isStringMap,
		})
	}

	return nil
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseHexTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return &spec
}

// parseHexTags extracts hex tags from a struct tag.
func parseHexTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range []string{"hex", "hex.size"} {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}

// Receive unmarshals data and canonicalizes annotated fields.
// Use for data coming from external sources (API requests, storage rows).
func (p *Processor[T]) Receive(ctx context.Context, data []byte) (*T, error) {
	start := time.Now()
	emitReceiveStart(ctx, p.codec.ContentType(), p.typeName)

	var retErr error
	defer func() {
		emitReceiveComplete(ctx, p.codec.ContentType(), p.typeName,
			time.Since(start), len(p.plans), retErr)
	}()

	var obj T
	if err := p.codec.Unmarshal(data, &obj); err != nil {
		retErr = fmt.Errorf("unmarshal: %w", err)
		return nil, retErr
	}

	// Check for override interface
	if n, ok := any(&obj).(Normalizable); ok {
		if err := n.NormalizeHex(); err != nil {
			retErr = fmt.Errorf("normalize: %w", err)
			return nil, retErr
		}
		return &obj, nil
	}

	if err := p.applyNormalize(&obj); err != nil {
		retErr = fmt.Errorf("normalize: %w", err)
		return nil, retErr
	}

	return &obj, nil
}

// Send canonicalizes annotated fields on a clone and marshals the result.
// Use for data going to external destinations (API responses, storage).
func (p *Processor[T]) Send(ctx context.Context, obj *T) ([]byte, error) {
	start := time.Now()
	emitSendStart(ctx, p.codec.ContentType(), p.typeName)

	var retErr error
	var retData []byte
	defer func() {
		emitSendComplete(ctx, p.codec.ContentType(), p.typeName,
			len(retData), time.Since(start), len(p.plans), retErr)
	}()

	if obj == nil {
		retData, retErr = p.codec.Marshal(nil)
		return retData, retErr
	}

	// Clone to avoid mutating original
	clone := (*obj).Clone()

	// Check for override interface
	if n, ok := any(&clone).(Normalizable); ok {
		if err := n.NormalizeHex(); err != nil {
			retErr = fmt.Errorf("normalize: %w", err)
			return nil, retErr
		}
		retData, retErr = p.codec.Marshal(&clone)
		return retData, retErr
	}

	if err := p.applyNormalize(&clone); err != nil {
		retErr = fmt.Errorf("normalize: %w", err)
		return nil, retErr
	}

	retData, retErr = p.codec.Marshal(&clone)
	return retData, retErr
}

// canonicalize decodes hex text against the plan's size and re-encodes it
// in the plan's canonical form.
func canonicalize(text []byte, plan hexFieldPlan) ([]byte, error) {
	buf := make([]byte, plan.size)
	if err := Decode(buf, text, plan.policy); err != nil {
		return nil, err
	}
	return AppendEncode(make([]byte, 0, plan.size*2+2), buf, plan.policy)
}

// applyNormalize canonicalizes annotated fields via reflection.
func (p *Processor[T]) applyNormalize(obj *T) error {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range p.plans {
		field, ok := p.getField(rv, plan)
		if !ok {
			continue
		}

		// Handle slice of strings
		if plan.isSlice {
			for i := 0; i < field.Len(); i++ {
				elem := field.Index(i)
				if elem.CanSet() {
					out, err := canonicalize([]byte(elem.String()), plan)
					if err != nil {
						return fmt.Errorf("field %s[%d]: %w", plan.name, i, err)
					}
					elem.SetString(string(out))
				}
			}
			continue
		}

		// Handle map of strings
		if plan.isMap {
			iter := field.MapRange()
			for iter.Next() {
				k, v := iter.Key(), iter.Value()
				out, err := canonicalize([]byte(v.String()), plan)
				if err != nil {
					return fmt.Errorf("field %s[%v]: %w", plan.name, k.Interface(), err)
				}
				field.SetMapIndex(k, reflect.ValueOf(string(out)))
			}
			continue
		}

		// Handle scalar string or []byte
		if !field.CanSet() {
			continue
		}

		var text []byte
		if plan.isBytes {
			text = field.Bytes()
		} else {
			text = []byte(field.String())
		}

		out, err := canonicalize(text, plan)
		if err != nil {
			return fmt.Errorf("field %s: %w", plan.name, err)
		}

		if plan.isBytes {
			field.SetBytes(out)
		} else {
			field.SetString(string(out))
		}
	}

	return nil
}

// getField navigates a field path, dereferencing pointers as needed.
func (p *Processor[T]) getField(rv reflect.Value, plan hexFieldPlan) (reflect.Value, bool) {
	if len(plan.ptrIndices) == 0 {
		return rv.FieldByIndex(plan.index), true
	}

	current := rv
	ptrSet := make(map[int]bool, len(plan.ptrIndices))
	for _, idx := range plan.ptrIndices {
		ptrSet[idx] = true
	}

	for i, idx := range plan.index {
		current = current.Field(idx)

		if ptrSet[i] {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}

	return current, true
}
