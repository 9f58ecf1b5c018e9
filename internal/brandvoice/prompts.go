package brandvoice

const guideSystemPrompt = "You are an expert brand strategist who specializes in developing distinctive and consistent brand voices."

const guideIntro = `Create a detailed brand voice guide for the following product/service:

Product/Service: %s
Description: %s
Desired Tone: %s
`

const existingContentSection = `
Examples of existing content:
%s

Analyze these examples to extract the existing voice characteristics.
`

const guideComponents = `
Create a comprehensive brand voice guide with the following components:

1. Voice Characteristics:
   - Three adjectives that best describe the brand voice
   - Overall personality and character of the brand
   - How the voice should make the audience feel

2. Tone Specification:
   - When to use a more formal vs. casual tone
   - Emotional range (what emotions should be expressed and how strongly)
   - Level of authority/expertise to convey

3. Language Patterns:
   - Sentence length and structure preferences
   - Vocabulary level and complexity
   - Types of words to emphasize (e.g., action verbs, descriptive adjectives)
   - Words or phrases to use frequently
   - Words or phrases to avoid

4. Writing Style Guidelines:
   - Use of literary devices (metaphors, analogies, etc.)
   - Approach to humor or wit
   - How to address the audience (e.g., first person, second person)
   - Punctuation and formatting preferences

5. Examples:
   - Provide three short examples demonstrating this voice in different contexts

Format your response as structured data that could be parsed into JSON.`

const parserSystemPrompt = "You are a precision parser that converts text into clean JSON format."

const structureGuidePrompt = `Parse the following brand voice guide into a structured JSON format:

%s

Convert it to a clean JSON structure with these main categories:
- voice_characteristics
- tone_specification
- language_patterns
- writing_style
- examples

Format as valid JSON only with no other text.`

const contentSystemPrompt = "You are an expert in adapting brand voice guidelines to specific content formats."

const contentGuidelinesPrompt = `You have the following brand voice guide:

%s

Now provide specific guidance for adapting this brand voice to %s content%s.

Include:
1. Tone adaptations specific to this content type
2. Language style recommendations
3. Content structure guidance
4. Any special considerations for this format

Format as concise bullet points that can be directly used by a copywriter.`
